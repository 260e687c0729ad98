package battlenet

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/blogem/battlenet-login/authenticator"
	"github.com/blogem/battlenet-login/models"
)

// mapUser normalizes a Battle.net profile. The battle tag is the player's
// public handle and maps to Nickname; Battle.net exposes no real name, email
// or avatar through this endpoint.
func mapUser(profile authenticator.RawProfile, token *authenticator.Token, now time.Time) (*models.User, error) {
	id := stringField(profile, "id")
	if id == "" {
		id = stringField(profile, "sub")
	}

	tag := stringField(profile, "battletag")
	if tag == "" {
		tag = stringField(profile, "battleTag")
	}

	var expiresAt time.Time
	switch {
	case token.ExpiresIn > 0:
		expiresAt = now.Add(time.Duration(token.ExpiresIn) * time.Second)
	case !token.Expiry.IsZero():
		expiresAt = token.Expiry
	}

	user, err := models.NewUserBuilder().
		SetOriginal(profile).
		SetFields(id, tag, "", "", "").
		SetToken(token.AccessToken, token.RefreshToken, expiresAt).
		Build()
	if err != nil {
		body, _ := json.Marshal(profile)
		return nil, &authenticator.ProfileFetchError{StatusCode: http.StatusOK, Body: body, Err: err}
	}
	return user, nil
}

// stringField renders a string or numeric profile value as a string
func stringField(profile authenticator.RawProfile, key string) string {
	switch v := profile[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}
