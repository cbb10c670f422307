package runs

import "context"

// Repo persists run metadata.
type Repo interface {
	Create(ctx context.Context, run Run) error
	List(ctx context.Context, limit, offset int) ([]Run, error)
}

func validate(run Run) error {
	if run.ID == "" || run.Status == "" {
		return ErrInvalidInput
	}
	return nil
}
