package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	// FirebaseApp is the Firebase app instance
	FirebaseApp *firebase.App
	// AuthClient verifies externally-issued ID tokens
	AuthClient *auth.Client
)

// InitFirebase initializes the Firebase Admin SDK used for token verification
func InitFirebase(serviceAccountPath string) error {
	ctx := context.Background()

	if serviceAccountPath == "" {
		log.Println("Warning: FIREBASE_SERVICE_ACCOUNT_PATH not set. Protected routes will reject all tokens.")
		return nil
	}

	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("error getting auth client: %v", err)
	}

	FirebaseApp = app
	AuthClient = client

	log.Println("Firebase token verification initialized successfully")
	return nil
}

// FirebaseVerifier adapts the Firebase auth client to the middleware's
// TokenVerifier interface.
type FirebaseVerifier struct{}

func (FirebaseVerifier) VerifyToken(ctx context.Context, idToken string) (email, uid string, err error) {
	if AuthClient == nil {
		return "", "", errors.New("identity provider not configured")
	}

	token, err := AuthClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", err
	}

	claimEmail, _ := token.Claims["email"].(string)
	if claimEmail == "" {
		return "", "", errors.New("token has no email claim")
	}

	return claimEmail, token.UID, nil
}
