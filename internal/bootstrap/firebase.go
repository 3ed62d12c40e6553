package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/bosswatch/bosswatch-backend/config"
)

// Firebase bundles the two clients the service uses: token verification
// and the document store.
type Firebase struct {
	Auth      *fbauth.Client
	Firestore *firestore.Client
}

// InitFirebase initializes the Firebase Admin SDK and opens the Auth and
// Firestore clients.
func InitFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*Firebase, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("get auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firestore client: %w", err)
	}

	return &Firebase{Auth: authClient, Firestore: fsClient}, nil
}

func (f *Firebase) Close() {
	if f != nil && f.Firestore != nil {
		_ = f.Firestore.Close()
	}
}
