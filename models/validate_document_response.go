package models

const (
	MessageDocumentValid    = "Document is valid."
	MessageDocumentNotValid = "Document is not valid."
)

type ValidateDocumentResponse struct {
	Valid        bool   `json:"valid"`
	DocumentType string `json:"documentType" example:"CPF"`
	Message      string `json:"message" example:"Document is valid."`
}

// NewValidateDocumentResponse fills in the message that matches valid.
func NewValidateDocumentResponse(valid bool, documentType string) ValidateDocumentResponse {
	message := MessageDocumentNotValid
	if valid {
		message = MessageDocumentValid
	}
	return ValidateDocumentResponse{
		Valid:        valid,
		DocumentType: documentType,
		Message:      message,
	}
}

type ErrorResponse struct {
	Error string `json:"error" example:"Document is required."`
}
