package utils

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Credentials are the secrets supplied by the environment.
type Credentials struct {
	Email             string // EMAIL
	Password          string // PASSWORD
	MapsAPIKey        string // GOOGLE_MAPS_API_KEY
	ConsumerKey       string // CONSUMER_KEY
	ConsumerSecret    string // CONSUMER_SECRET_KEY
	AccessToken       string // ACCESS_TOKEN
	AccessTokenSecret string // ACCESS_TOKEN_SECRET
}

// LoadCredentials reads credentials from the process environment after loading
// envFile, if it exists. Values already in the environment win over the file.
// Missing values are returned empty and are not validated.
func LoadCredentials(envFile string) (Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, err
		}
	}

	return Credentials{
		Email:             os.Getenv("EMAIL"),
		Password:          os.Getenv("PASSWORD"),
		MapsAPIKey:        os.Getenv("GOOGLE_MAPS_API_KEY"),
		ConsumerKey:       os.Getenv("CONSUMER_KEY"),
		ConsumerSecret:    os.Getenv("CONSUMER_SECRET_KEY"),
		AccessToken:       os.Getenv("ACCESS_TOKEN"),
		AccessTokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
	}, nil
}
