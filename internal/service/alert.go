package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

// Alert is the message shown to the user when action fails. Validation
// errors show their own message; everything else gets the generic text.
func Alert(action string, err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return fmt.Sprintf("Failed to %s. Please try again.", action)
}
