// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	apikeys "cloud.google.com/go/apikeys/apiv2"
	"cloud.google.com/go/apikeys/apiv2/apikeyspb"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
)

// GoogleKeyDisplayName is the display name of the Maps key looked up via ADC.
const GoogleKeyDisplayName = "SchoolFinder Geocoding Key"

// ResolveGoogleAPIKey returns GOOGLE_MAPS_API_KEY, or the key named
// GoogleKeyDisplayName in the ADC project when the variable is unset.
func ResolveGoogleAPIKey(ctx context.Context) (string, error) {
	if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
		return key, nil
	}

	log.Println("GOOGLE_MAPS_API_KEY is not set. Attempting to retrieve via ADC...")

	key, err := apiKeyFromADC(ctx)
	if err != nil {
		return "", fmt.Errorf("retrieving google maps key via ADC: %w", err)
	}

	log.Println("✅ Retrieved Google Maps API Key via ADC")

	return key, nil
}

func apiKeyFromADC(ctx context.Context) (string, error) {
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", fmt.Errorf("finding default credentials: %w", err)
	}

	projectID := creds.ProjectID
	if projectID == "" {
		projectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}

	if projectID == "" {
		return "", errors.New("no project in credentials and GOOGLE_CLOUD_PROJECT is unset")
	}

	client, err := apikeys.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating apikeys client: %w", err)
	}
	defer client.Close()

	it := client.ListKeys(ctx, &apikeyspb.ListKeysRequest{
		Parent: fmt.Sprintf("projects/%s/locations/global", projectID),
	})

	for {
		key, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("listing keys: %w", err)
		}

		if key.DisplayName != GoogleKeyDisplayName {
			continue
		}

		// ListKeys redacts the secret.
		resp, err := client.GetKeyString(ctx, &apikeyspb.GetKeyStringRequest{Name: key.Name})
		if err != nil {
			return "", fmt.Errorf("getting key string: %w", err)
		}

		if resp.KeyString == "" {
			return "", fmt.Errorf("key %q has an empty key string", key.Name)
		}

		return resp.KeyString, nil
	}

	return "", fmt.Errorf("key %q not found in project %s", GoogleKeyDisplayName, projectID)
}
