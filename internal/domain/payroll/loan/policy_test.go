package loan

import "testing"

func TestEffectiveFields(t *testing.T) {
	tests := []struct {
		name    string
		ctx     FieldContext
		allowed []Field
		denied  []Field
	}{
		{
			name:    "new loan opens everything",
			ctx:     FieldContext{IsNew: true},
			allowed: []Field{FieldEmployee, FieldLoanType, FieldRequestDate, FieldPrincipal, FieldInstallments, FieldNotes},
		},
		{
			name:    "pending loan pins the employee",
			ctx:     FieldContext{IsPending: true},
			allowed: []Field{FieldLoanType, FieldRequestDate, FieldPrincipal, FieldInstallments, FieldNotes},
			denied:  []Field{FieldEmployee},
		},
		{
			name:    "frozen loan opens notes for admins",
			ctx:     FieldContext{IsPrivileged: true},
			allowed: []Field{FieldNotes},
			denied:  []Field{FieldEmployee, FieldLoanType, FieldRequestDate, FieldPrincipal, FieldInstallments},
		},
		{
			name:   "frozen loan is read-only for regular users",
			ctx:    FieldContext{},
			denied: []Field{FieldEmployee, FieldLoanType, FieldRequestDate, FieldPrincipal, FieldInstallments, FieldNotes},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := EffectiveFields(tt.ctx)
			for _, f := range tt.allowed {
				if !policy.Allows(f) {
					t.Errorf("%s should be writable", f)
				}
			}
			for _, f := range tt.denied {
				if policy.Allows(f) {
					t.Errorf("%s should not be writable", f)
				}
			}
		})
	}
}
