package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asecurityteam/lambdakit/pkg/domain"
	"github.com/asecurityteam/lambdakit/pkg/request"
	"github.com/golang-jwt/jwt/v5"
)

const (
	bearerPrefix      = "bearer "
	defaultScopeClaim = "scope"
)

// ErrMissingSecret is returned by Component.New when no secret is
// configured.
var ErrMissingSecret = errors.New("auth: secret is required")

var signingMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// JWT authorizes requests carrying an HMAC signed bearer token.
//
// Requests without an Authorization header resolve to the anonymous user,
// who is never authorised. A present but invalid token fails GetUser.
type JWT struct {
	Secret []byte
	// Issuer and Audience are checked when set.
	Issuer   string
	Audience string
	// RequiredScopes must all be granted to the user.
	RequiredScopes []string
	// ScopeClaim names the claim holding granted scopes, either as a space
	// separated string or a list. The default is "scope".
	ScopeClaim string
}

// GetUser implements handlers.Authorizer.
func (a *JWT) GetUser(_ context.Context, req *request.Request) (domain.User, error) {
	header := req.Header("authorization", "")
	if header == "" {
		return domain.AnonymousUser, nil
	}
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return domain.User{}, domain.NewUnauthorized("authorization header must carry a bearer token", nil)
	}
	raw := strings.TrimSpace(header[len(bearerPrefix):])

	opts := []jwt.ParserOption{jwt.WithValidMethods(signingMethods)}
	if a.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.Issuer))
	}
	if a.Audience != "" {
		opts = append(opts, jwt.WithAudience(a.Audience))
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return a.Secret, nil
	}, opts...)
	if err != nil {
		return domain.User{}, domain.NewUnauthorized("invalid token", err)
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return domain.User{}, domain.NewUnauthorized("token has no subject", err)
	}
	return domain.User{
		ID:     subject,
		Scopes: a.scopes(claims),
		Claims: map[string]interface{}(claims),
	}, nil
}

// IsAuthorised implements handlers.Authorizer.
func (a *JWT) IsAuthorised(_ context.Context, user domain.User, _ *request.Request) error {
	if user.Anonymous() {
		return domain.NewForbidden("authentication required", nil)
	}
	for _, scope := range a.RequiredScopes {
		if !user.HasScope(scope) {
			return domain.NewForbidden(fmt.Sprintf("scope %s required", scope), nil)
		}
	}
	return nil
}

func (a *JWT) scopes(claims jwt.MapClaims) []string {
	name := a.ScopeClaim
	if name == "" {
		name = defaultScopeClaim
	}
	switch v := claims[name].(type) {
	case string:
		return strings.Fields(v)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if str, ok := s.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Config is the settings driven part of a JWT authorizer.
type Config struct {
	Secret         string   `description:"Shared HMAC secret used to verify tokens."`
	Issuer         string   `description:"Expected token issuer. Empty skips the check."`
	Audience       string   `description:"Expected token audience. Empty skips the check."`
	RequiredScopes []string `description:"Scopes every caller must be granted."`
}

// Name of the configuration root.
func (*Config) Name() string {
	return "auth"
}

// Component builds a JWT authorizer from settings.
type Component struct{}

// NewComponent populates the default values.
func NewComponent() *Component {
	return &Component{}
}

// Settings generates a config populated with the defaults.
func (*Component) Settings() *Config {
	return &Config{}
}

// New constructs a JWT authorizer from the given config.
func (*Component) New(_ context.Context, conf *Config) (*JWT, error) {
	if conf.Secret == "" {
		return nil, ErrMissingSecret
	}
	return &JWT{
		Secret:         []byte(conf.Secret),
		Issuer:         conf.Issuer,
		Audience:       conf.Audience,
		RequiredScopes: conf.RequiredScopes,
	}, nil
}
