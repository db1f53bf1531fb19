package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoSim-25-26J-441/project-tracker-backend/config"
)

func TestInitializeFirebase_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := InitializeFirebase(ctx, nil)
	assert.ErrorIs(t, err, ErrFirebaseNotConfigured)

	_, err = InitializeFirebase(ctx, &config.FirebaseConfig{})
	assert.ErrorIs(t, err, ErrFirebaseNotConfigured)

	missing := filepath.Join(t.TempDir(), "nope.json")
	_, err = InitializeFirebase(ctx, &config.FirebaseConfig{CredentialsPath: missing})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
