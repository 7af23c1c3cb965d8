package fakeapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	errMissingHash = errors.New("init data has no hash")
	errBadHash     = errors.New("init data signature mismatch")
)

// ParseInitData decodes a Mini App init-data string and returns the user it
// names. When botToken is non-empty the signature is checked first.
func ParseInitData(raw, botToken string) (tgbotapi.User, bool, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return tgbotapi.User{}, false, fmt.Errorf("parse init data: %w", err)
	}
	if botToken != "" {
		if err := verifyInitData(values, botToken); err != nil {
			return tgbotapi.User{}, false, err
		}
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return tgbotapi.User{}, false, nil
	}
	var user tgbotapi.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return tgbotapi.User{}, false, fmt.Errorf("parse init data user: %w", err)
	}
	return user, true, nil
}

// SignInitData builds a signed init-data string for user, the way the
// Telegram client does for a bot with botToken.
func SignInitData(botToken string, user tgbotapi.User, authDate int64) (string, error) {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	values := url.Values{}
	values.Set("user", string(userJSON))
	values.Set("auth_date", fmt.Sprint(authDate))
	values.Set("hash", initDataHash(values, botToken))
	return values.Encode(), nil
}

func verifyInitData(values url.Values, botToken string) error {
	got := values.Get("hash")
	if got == "" {
		return errMissingHash
	}
	want := initDataHash(values, botToken)
	if !hmac.Equal([]byte(got), []byte(want)) {
		return errBadHash
	}
	return nil
}

func initDataHash(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
