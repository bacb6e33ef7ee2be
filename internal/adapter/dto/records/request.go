package records

// RecordPathRequest binds the :id path parameter
type RecordPathRequest struct {
	ID string `param:"id" validate:"required,max=128,recordid"`
}
