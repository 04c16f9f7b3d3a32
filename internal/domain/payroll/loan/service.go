package loan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/internal/domain"
	"backoffice/internal/domain/audit"
	"backoffice/pkg/logger"
)

// Service provides business operations for the loan ledger.
type Service struct {
	repo      Repository
	employees EmployeeLookup
	loanTypes LoanTypeLookup
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a loan service.
func NewService(
	repo Repository,
	employees EmployeeLookup,
	loanTypes LoanTypeLookup,
	txManager tx.Manager,
	auditor audit.Recorder,
) *Service {
	if auditor == nil {
		auditor = audit.NopRecorder{}
	}
	return &Service{
		repo:      repo,
		employees: employees,
		loanTypes: loanTypes,
		txManager: txManager,
		auditor:   auditor,
	}
}

// resolveTerms checks the referenced employee and loan type exist, then
// computes interest, total and the derived fields on the loan itself.
// The caller supplies principal and installment count; everything else
// financial is overwritten here.
func (s *Service) resolveTerms(ctx context.Context, l *Loan) error {
	if _, err := s.employees.GetByID(ctx, l.EmployeeID); err != nil {
		return err
	}
	lt, err := s.loanTypes.GetByID(ctx, l.LoanTypeID)
	if err != nil {
		return err
	}

	terms := ComputeTerms(l.Principal, lt.RatePercent)
	l.Interest = terms.Interest
	l.TotalPayable = terms.TotalPayable
	l.Balance = terms.TotalPayable
	return nil
}

// Create grants a loan: terms are computed from the loan type's rate, the
// balance opens at the total payable, and the amortization schedule is
// generated. Generation is idempotent: a loan that somehow already has
// installments does not get a second set.
func (s *Service) Create(ctx context.Context, l *Loan) error {
	if l.Status == "" {
		l.Status = StatusPending
	}
	if l.RequestDate.IsZero() {
		l.RequestDate = time.Now().UTC()
	}

	l.CreatedBy = appctx.GetUserID(ctx)
	l.UpdatedBy = l.CreatedBy

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolveTerms(ctx, l); err != nil {
			return err
		}
		if err := l.Validate(ctx); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, l); err != nil {
			return fmt.Errorf("create loan: %w", err)
		}

		exists, err := s.repo.HasSchedule(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("check schedule: %w", err)
		}
		if !exists {
			l.Schedule = BuildSchedule(l.ID, l.TotalPayable, l.InstallmentCount, l.RequestDate)
			if err := s.repo.SaveSchedule(ctx, l.ID, l.Schedule); err != nil {
				return fmt.Errorf("save schedule: %w", err)
			}
		}

		return s.recordAudit(ctx, l, audit.ActionCreate)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "loan created",
		"id", l.ID,
		"employee_id", l.EmployeeID,
		"total", l.TotalPayable,
		"installments", l.InstallmentCount)
	return nil
}

// GetByID retrieves a loan with its schedule.
func (s *Service) GetByID(ctx context.Context, loanID id.ID) (*Loan, error) {
	l, err := s.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.repo.GetSchedule(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	l.Schedule = schedule

	return l, nil
}

// Update modifies a loan under the field policy for its state. While the
// loan is pending the financial fields may change, which recomputes the
// terms and regenerates the schedule from scratch. Once the loan is paid
// or annulled only the notes remain writable, and only for privileged
// users; any financial change is rejected.
func (s *Service) Update(ctx context.Context, l *Loan) error {
	existing, err := s.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}

	policy := EffectiveFields(FieldContext{
		IsPending:    existing.IsPending(),
		IsPrivileged: appctx.IsAdmin(ctx),
	})

	if err := s.checkWritable(policy, existing, l); err != nil {
		return err
	}

	// employee is pinned after creation regardless of state
	l.EmployeeID = existing.EmployeeID
	l.Status = existing.Status
	l.UpdatedBy = appctx.GetUserID(ctx)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if existing.IsPending() {
			if err := s.resolveTerms(ctx, l); err != nil {
				return err
			}
			if err := l.Validate(ctx); err != nil {
				return err
			}

			l.Schedule = BuildSchedule(l.ID, l.TotalPayable, l.InstallmentCount, l.RequestDate)
			if err := s.repo.SaveSchedule(ctx, l.ID, l.Schedule); err != nil {
				return fmt.Errorf("save schedule: %w", err)
			}
		} else {
			// frozen loan: carry existing financials, only notes change
			l.LoanTypeID = existing.LoanTypeID
			l.RequestDate = existing.RequestDate
			l.Principal = existing.Principal
			l.Interest = existing.Interest
			l.TotalPayable = existing.TotalPayable
			l.Balance = existing.Balance
			l.InstallmentCount = existing.InstallmentCount
			l.Schedule = existing.Schedule
		}

		if err := s.repo.Update(ctx, l); err != nil {
			return fmt.Errorf("update loan: %w", err)
		}

		return s.recordAudit(ctx, l, audit.ActionUpdate)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "loan updated", "id", l.ID, "status", l.Status)
	return nil
}

// checkWritable rejects changes to fields the policy does not open.
func (s *Service) checkWritable(policy FieldPolicy, existing, updated *Loan) error {
	type change struct {
		field   Field
		changed bool
	}
	changes := []change{
		{FieldLoanType, updated.LoanTypeID != existing.LoanTypeID},
		{FieldRequestDate, !updated.RequestDate.Equal(existing.RequestDate)},
		{FieldPrincipal, !updated.Principal.Equal(existing.Principal)},
		{FieldInstallments, updated.InstallmentCount != existing.InstallmentCount},
		{FieldNotes, updated.Notes != existing.Notes},
	}
	for _, c := range changes {
		if c.changed && !policy.Allows(c.field) {
			return apperror.NewConflict("field is not editable in the loan's current state").
				WithDetail("field", string(c.field)).
				WithDetail("status", string(existing.Status))
		}
	}
	return nil
}

// Annul cancels a pending loan. The header and schedule are kept for
// history; the status alone flips to ANU. Paid loans cannot be annulled.
func (s *Service) Annul(ctx context.Context, loanID id.ID) error {
	l, err := s.GetByID(ctx, loanID)
	if err != nil {
		return err
	}
	if !l.IsPending() {
		return apperror.NewConflict("only pending loans can be annulled").
			WithDetail("loan_id", loanID.String()).
			WithDetail("status", string(l.Status))
	}

	l.Status = StatusAnnulled
	l.UpdatedBy = appctx.GetUserID(ctx)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, l); err != nil {
			return fmt.Errorf("annul loan: %w", err)
		}
		return s.recordAudit(ctx, l, audit.ActionAnnul)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "loan annulled", "id", loanID)
	return nil
}

// Delete removes the loan and its schedule. Paid loans are part of the
// payroll record and cannot be deleted.
func (s *Service) Delete(ctx context.Context, loanID id.ID) error {
	l, err := s.GetByID(ctx, loanID)
	if err != nil {
		return err
	}
	if l.Status == StatusPaid {
		return apperror.NewConflict("paid loans cannot be deleted").
			WithDetail("loan_id", loanID.String())
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, loanID); err != nil {
			return fmt.Errorf("delete loan: %w", err)
		}
		return s.recordAudit(ctx, l, audit.ActionDelete)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "loan deleted", "id", loanID)
	return nil
}

// List retrieves loans with filtering and pagination.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[*Loan], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) recordAudit(ctx context.Context, l *Loan, action audit.Action) error {
	changes, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}
	return s.auditor.Record(ctx, audit.Entry{
		ID:         id.New(),
		EntityType: "loan",
		EntityID:   l.ID,
		Action:     action,
		UserID:     appctx.GetUserID(ctx),
		Changes:    changes,
		CreatedAt:  time.Now().UTC(),
	})
}
