package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// HandoffPayload is the content of a signed proof-of-pickup token.
//
// Fields are declared in sorted key order so json.Marshal produces the
// canonical form directly: the signature is computed over this exact byte
// sequence, and any reordering would invalidate every issued token.
type HandoffPayload struct {
	DeliveryBuilding string `json:"delivery_building"`
	DeliveryRoom     string `json:"delivery_room"`
	OrderID          string `json:"order_id"`
	PackageType      string `json:"package_type"`
	StudentID        string `json:"student_id"`
	StudentName      string `json:"student_name"`
}

// HandoffToken is the transport form rendered into the pickup code.
// The minimal variant carries the payload alone with an empty signature,
// relying on physical possession plus the order/student match.
type HandoffToken struct {
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

// SignedHandoff is the result of generating a token: the canonical payload
// and hex signature are stored on the order, the token is rendered for the
// recipient.
type SignedHandoff struct {
	Payload   string
	Signature string
	Token     HandoffToken
}

// HandoffClaims is what a verified token proves: which order, picked up by
// which student.
type HandoffClaims struct {
	OrderID   kernel.UUID
	StudentID kernel.UUID
}

// HandoffAuthenticator signs and verifies proof-of-pickup tokens with a
// server-wide secret. The secret is injected at construction; the
// authenticator never reads ambient state.
type HandoffAuthenticator struct {
	secret []byte
}

// NewHandoffAuthenticator creates an authenticator for the given secret.
func NewHandoffAuthenticator(secret string) (HandoffAuthenticator, error) {
	if secret == "" {
		return HandoffAuthenticator{}, errs.NewValueIsRequiredError("secret")
	}
	return HandoffAuthenticator{secret: []byte(secret)}, nil
}

// Generate signs a payload. Called exactly once per order, at creation; the
// token is never regenerated.
func (a HandoffAuthenticator) Generate(payload HandoffPayload) (SignedHandoff, error) {
	if payload.OrderID == "" {
		return SignedHandoff{}, errs.NewValueIsRequiredError("orderID")
	}
	if payload.StudentID == "" {
		return SignedHandoff{}, errs.NewValueIsRequiredError("studentID")
	}

	canonical, err := json.Marshal(payload)
	if err != nil {
		return SignedHandoff{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}
	signature := hex.EncodeToString(a.sign(canonical))

	return SignedHandoff{
		Payload:   string(canonical),
		Signature: signature,
		Token: HandoffToken{
			Payload:   base64.StdEncoding.EncodeToString(canonical),
			Signature: signature,
		},
	}, nil
}

// Verify checks a presented token and extracts its claims. Tokens carrying a
// signature get it recomputed and compared in constant time; tokens without
// one are the minimal variant and are accepted on payload shape alone.
// Whether the claimed order exists, matches the student, and still has a
// redeemable token is decided by the caller against the store.
func (a HandoffAuthenticator) Verify(token HandoffToken) (HandoffClaims, error) {
	if token.Payload == "" {
		return HandoffClaims{}, errs.NewValueIsRequiredError("payload")
	}

	canonical := decodePayload(token.Payload)

	if token.Signature != "" {
		provided, err := hex.DecodeString(token.Signature)
		if err != nil {
			return HandoffClaims{}, errs.NewAuthenticationFailedErrorWithCause("signature is not hex-encoded", err)
		}
		if !hmac.Equal(a.sign(canonical), provided) {
			return HandoffClaims{}, errs.NewAuthenticationFailedError("signature mismatch")
		}
	}

	var fields struct {
		OrderID   string `json:"order_id"`
		StudentID string `json:"student_id"`
	}
	if err := json.Unmarshal(canonical, &fields); err != nil {
		return HandoffClaims{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	orderID, err := kernel.UUIDFromString(fields.OrderID)
	if err != nil {
		return HandoffClaims{}, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	studentID, err := kernel.UUIDFromString(fields.StudentID)
	if err != nil {
		return HandoffClaims{}, errs.NewValueIsInvalidErrorWithCause("studentID", err)
	}

	return HandoffClaims{OrderID: orderID, StudentID: studentID}, nil
}

func (a HandoffAuthenticator) sign(canonical []byte) []byte {
	mac := hmac.New(sha256.New, a.secret)
	mac.Write(canonical)
	return mac.Sum(nil)
}

// decodePayload accepts both transport encodings: base64 as rendered into
// the code, or raw JSON as decoded by an external scanner.
func decodePayload(payload string) []byte {
	if decoded, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return decoded
	}
	return []byte(payload)
}
