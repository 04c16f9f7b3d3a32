package loan

// Field names a user-editable loan attribute for policy purposes.
type Field string

const (
	FieldEmployee     Field = "employeeId"
	FieldLoanType     Field = "loanTypeId"
	FieldRequestDate  Field = "requestDate"
	FieldPrincipal    Field = "principal"
	FieldInstallments Field = "installmentCount"
	FieldNotes        Field = "notes"
)

// FieldPolicy is the explicit set of fields a caller may write in a given
// situation. Derived amounts (interest, total, balance, status, schedule)
// are never writable; they are always recomputed server-side.
type FieldPolicy struct {
	Writable map[Field]bool
}

// Allows reports whether the policy permits writing f.
func (p FieldPolicy) Allows(f Field) bool { return p.Writable[f] }

// FieldContext describes the situation a policy is resolved for.
type FieldContext struct {
	// IsNew is true when the loan is being created
	IsNew bool
	// IsPending is true when the loan's status is still PEND
	IsPending bool
	// IsPrivileged is true for administrative users
	IsPrivileged bool
}

// EffectiveFields resolves the field policy for a context:
//
//   - creation opens every field;
//   - a pending loan keeps its financial fields open but pins the
//     employee, since the schedule can still be regenerated;
//   - a settled or annulled loan is frozen except for notes, and even
//     those only for privileged users.
func EffectiveFields(ctx FieldContext) FieldPolicy {
	switch {
	case ctx.IsNew:
		return FieldPolicy{Writable: map[Field]bool{
			FieldEmployee:     true,
			FieldLoanType:     true,
			FieldRequestDate:  true,
			FieldPrincipal:    true,
			FieldInstallments: true,
			FieldNotes:        true,
		}}
	case ctx.IsPending:
		return FieldPolicy{Writable: map[Field]bool{
			FieldLoanType:     true,
			FieldRequestDate:  true,
			FieldPrincipal:    true,
			FieldInstallments: true,
			FieldNotes:        true,
		}}
	case ctx.IsPrivileged:
		return FieldPolicy{Writable: map[Field]bool{
			FieldNotes: true,
		}}
	default:
		return FieldPolicy{Writable: map[Field]bool{}}
	}
}
