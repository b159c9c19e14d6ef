package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/careerforge/judge/internal/judge_errors"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const (
	KeyJWTSecret                    = "JWT_SECRET"
	KeyCtxUserCredClaims contextKey = "UserCredClaims"
)

var (
	validate *validator.Validate
)

func InitializeServices() {
	validate = initValidator() // used for validating struct fields
}

func initValidator() *validator.Validate {
	log.Info("initializing validator")
	validate := validator.New(validator.WithRequiredStructEnabled())

	// This makes error.Field() return "source_code" instead of "SourceCode"
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

func GetClaimsFromContext(
	ctx context.Context,
) (claims UserCredentialClaims, err error) {
	claimsValue := ctx.Value(KeyCtxUserCredClaims)
	claims, ok := claimsValue.(UserCredentialClaims)
	if !ok {
		err = fmt.Errorf(
			"%w, unable to parse claims to service.UserCredentialClaims, type of claims found is %T",
			judge_errors.ErrInternal,
			reflect.TypeOf(claimsValue),
		)
		log.Error(err)
	}
	return
}

// ContextWithClaims is used by the session middleware and by tests to
// attach an authenticated identity to a request context.
func ContextWithClaims(ctx context.Context, claims UserCredentialClaims) context.Context {
	return context.WithValue(ctx, KeyCtxUserCredClaims, claims)
}
