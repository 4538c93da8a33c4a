package worker

import "context"

// Autofiller fills an item's empty metadata from an external source.
// Declared here so the worker package does not import services.
type Autofiller interface {
	AutofillItem(ctx context.Context, profileID, itemID int64) error
}

type AutofillItemJob struct {
	Autofiller Autofiller
	ProfileID  int64
	ItemID     int64
}

func (j *AutofillItemJob) Name() string { return "autofill_item" }

func (j *AutofillItemJob) Run(ctx context.Context) error {
	return j.Autofiller.AutofillItem(ctx, j.ProfileID, j.ItemID)
}
