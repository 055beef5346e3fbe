package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	fpsDomain "github.com/allisson/cardvault/internal/fps/domain"
)

// fpsIDPattern is the 8-12 digit FPS ID shape.
var fpsIDPattern = regexp.MustCompile(`^\d{8,12}$`)

// fpsUseCase implements FpsUseCase.
type fpsUseCase struct {
	fpsRepo FpsAccountRepository
}

// Create validates and stores a new alias. The bank name is upper-cased and
// long fields are truncated to their caps.
func (u *fpsUseCase) Create(
	ctx context.Context,
	accountID uuid.UUID,
	input CreateFpsInput,
) (*fpsDomain.FpsAccount, error) {
	fpsID := strings.TrimSpace(input.FpsID)
	if !fpsIDPattern.MatchString(fpsID) {
		return nil, fpsDomain.ErrFpsIDInvalid
	}

	now := time.Now().UTC()
	fpsAccount := &fpsDomain.FpsAccount{
		ID:        uuid.Must(uuid.NewV7()),
		AccountID: accountID,
		FpsID:     fpsID,
		Recipient: truncate(strings.TrimSpace(input.Recipient), fpsDomain.MaxRecipientLength),
		Bank:      truncate(strings.ToUpper(strings.TrimSpace(input.Bank)), fpsDomain.MaxBankLength),
		Note:      truncate(strings.TrimSpace(input.Note), fpsDomain.MaxNoteLength),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.fpsRepo.Create(ctx, fpsAccount); err != nil {
		return nil, err
	}

	return fpsAccount, nil
}

// List returns the list projection without notes, newest first as ordered by
// the repository.
func (u *fpsUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*fpsDomain.FpsSummary, error) {
	fpsAccounts, err := u.fpsRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*fpsDomain.FpsSummary, 0, len(fpsAccounts))
	for _, fpsAccount := range fpsAccounts {
		summaries = append(summaries, &fpsDomain.FpsSummary{
			ID:        fpsAccount.ID,
			FpsID:     fpsAccount.FpsID,
			Recipient: fpsAccount.Recipient,
			Bank:      fpsAccount.Bank,
			CreatedAt: fpsAccount.CreatedAt,
		})
	}
	return summaries, nil
}

// Detail returns the full alias including the note.
func (u *fpsUseCase) Detail(
	ctx context.Context,
	accountID, fpsAccountID uuid.UUID,
) (*fpsDomain.FpsAccount, error) {
	return u.fpsRepo.Get(ctx, accountID, fpsAccountID)
}

// Update applies a partial update. The FPS ID is immutable; an update with no
// fields is rejected.
func (u *fpsUseCase) Update(
	ctx context.Context,
	accountID, fpsAccountID uuid.UUID,
	input UpdateFpsInput,
) error {
	if input.Recipient == nil && input.Bank == nil && input.Note == nil {
		return fpsDomain.ErrNoFieldsToUpdate
	}

	fpsAccount, err := u.fpsRepo.Get(ctx, accountID, fpsAccountID)
	if err != nil {
		return err
	}

	if input.Recipient != nil {
		fpsAccount.Recipient = truncate(strings.TrimSpace(*input.Recipient), fpsDomain.MaxRecipientLength)
	}
	if input.Bank != nil {
		fpsAccount.Bank = truncate(strings.ToUpper(strings.TrimSpace(*input.Bank)), fpsDomain.MaxBankLength)
	}
	if input.Note != nil {
		fpsAccount.Note = truncate(strings.TrimSpace(*input.Note), fpsDomain.MaxNoteLength)
	}
	fpsAccount.UpdatedAt = time.Now().UTC()

	return u.fpsRepo.Update(ctx, fpsAccount)
}

// Delete removes a single alias.
func (u *fpsUseCase) Delete(ctx context.Context, accountID, fpsAccountID uuid.UUID) error {
	return u.fpsRepo.Delete(ctx, accountID, fpsAccountID)
}

// Banks returns the curated bank list.
func (u *fpsUseCase) Banks() []string {
	return fpsDomain.KnownBanks
}

// truncate caps a string at max bytes.
func truncate(value string, max int) string {
	if len(value) > max {
		return value[:max]
	}
	return value
}

// NewFpsUseCase creates a new FPS alias use case instance.
func NewFpsUseCase(fpsRepo FpsAccountRepository) FpsUseCase {
	return &fpsUseCase{fpsRepo: fpsRepo}
}
