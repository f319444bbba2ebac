package jwt

import (
	b64 "encoding/base64"
	"os"
	"testing"
	"time"

	"github.com/umoor-sehhat/sehhat-backend/internal/config"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setTestKey(t *testing.T) {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	os.Setenv(config.ENV_JWT_TOKEN_KEY, b64.StdEncoding.EncodeToString(key))
}

func TestTokenRoundTrip(t *testing.T) {
	setTestKey(t)

	id := primitive.NewObjectID().Hex()
	token, err := GenerateNewToken(id, time.Minute, types.ROLE_AAMIL, []string{"houston-north"})
	if err != nil {
		t.Fatalf("GenerateNewToken error: %v", err)
	}

	claims, valid, err := ValidateToken(token)
	if err != nil || !valid {
		t.Fatalf("ValidateToken failed: valid=%t err=%v", valid, err)
	}
	if claims.ID != id {
		t.Errorf("claims.ID = %q, want %q", claims.ID, id)
	}
	if claims.Role != types.ROLE_AAMIL {
		t.Errorf("claims.Role = %q, want aamil", claims.Role)
	}
	if len(claims.ManagedMozes) != 1 || claims.ManagedMozes[0] != "houston-north" {
		t.Errorf("claims.ManagedMozes = %v", claims.ManagedMozes)
	}

	principal := claims.Principal()
	if principal.ID.Hex() != id || principal.Role != types.ROLE_AAMIL {
		t.Errorf("reconstructed principal mismatch: %+v", principal)
	}
	if !principal.Manages("houston-north") {
		t.Error("reconstructed principal must keep moze assignments")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	setTestKey(t)

	token, err := GenerateNewToken("someone", -time.Minute, types.ROLE_STUDENT, nil)
	if err != nil {
		t.Fatalf("GenerateNewToken error: %v", err)
	}

	_, valid, _ := ValidateToken(token)
	if valid {
		t.Error("expired token must not validate")
	}
}
