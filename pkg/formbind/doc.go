// Package formbind connects HTTP form submissions and Go structs to the
// validator engine.
//
// A Schema lists the fields of a form with their labels and rule annotations,
// usually loaded from YAML with LoadSchema. Bind adds the submitted values to an
// engine, one FormSubject per field; the subject lets the checked and same
// strategies inspect the rest of the submission. Handler wraps this into an
// http.Handler: rejected submissions get 422 with the rendered messages,
// accepted ones are passed to the engine's submit action (202) or to the next
// handler. Validate performs the same pass for callers that write
// their own responses.
//
// AddStruct is the equivalent for values already decoded into a struct: fields
// tagged `validate:"..."` are added with their `label` and `form` names.
//
//	type Signup struct {
//		Email string `form:"email" label:"Email" validate:"required is:email"`
//		Terms bool   `form:"terms" label:"Terms" validate:"checked"`
//	}
//
//	engine := validator.New()
//	if err := formbind.AddStruct(engine, &signup); err != nil {
//		return err
//	}
//	failed, err := engine.Validate()
package formbind
