package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cadastro/internal/domain"
)

const secondsPerDay = 86400

// AdminService issues and validates the short-lived bearer tokens that guard
// the administrative surface.
type AdminService interface {
	IssueToken() (string, error)
	ValidateToken(token string) error
}

// adminService is stateless beyond its configuration; it is safe to share
// across concurrent callers without synchronization.
type adminService struct {
	secret   []byte
	roleName string
	ttlDays  int64
	clock    Clock
}

func NewAdminService(secret, roleName string, ttlDays int64, clock Clock) AdminService {
	return &adminService{
		secret:   []byte(secret),
		roleName: roleName,
		ttlDays:  ttlDays,
		clock:    clock,
	}
}

// IssueToken signs {sub, exp} with HS512. The only claims on the token are
// the configured role name and the expiry.
func (s *adminService) IssueToken() (string, error) {
	now := s.clock.Now()
	expiresAt := now.Unix() + s.ttlDays*secondsPerDay
	if expiresAt < now.Unix() {
		return "", domain.NewInternal("token expiry is not representable")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   s.roleName,
		ExpiresAt: jwt.NewNumericDate(time.Unix(expiresAt, 0)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", domain.NewInternal(err.Error())
	}
	return signed, nil
}

// ValidateToken verifies signature, expiry and subject. Signature failures
// and subject mismatches share one error code so a caller cannot tell which
// check rejected the token; expiry gets its own code.
func (s *adminService) ValidateToken(token string) error {
	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithSubject(s.roleName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.NewBusiness(domain.CodeInvalidToken)
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.NewBusiness(domain.CodeExpiredToken)
	case errors.Is(err, jwt.ErrTokenInvalidSubject):
		return domain.NewBusiness(domain.CodeInvalidToken)
	default:
		return domain.NewInternal(err.Error())
	}
}

func (s *adminService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrTokenUnverifiable
	}
	return s.secret, nil
}
