package response_models

import "github.com/google/uuid"

type PaymentMethodResponse struct {
	ID         uuid.UUID `json:"id"`
	MethodName string    `json:"method_name"`
	Provider   string    `json:"provider"`
}
