package auth

import (
	appctx "tillpoint/internal/core/context"
)

// ContextValidator adapts the token manager to the middleware's
// validator interface.
type ContextValidator struct {
	tokens *TokenManager
}

// NewContextValidator creates a validator for the auth middleware.
func NewContextValidator(tokens *TokenManager) *ContextValidator {
	return &ContextValidator{tokens: tokens}
}

// ValidateToken parses a token into a user context.
func (v *ContextValidator) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	claims, err := v.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return &appctx.UserContext{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    claims.Role,
		Modules: claims.Modules,
	}, nil
}
