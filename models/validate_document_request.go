package models

// ValidateDocumentRequest is the body of POST /validate. A missing, null or
// empty document fails the required check.
type ValidateDocumentRequest struct {
	Document string `json:"document" validate:"required" example:"529.982.247-25"`
}
