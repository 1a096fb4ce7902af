package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// VaultConfig points at a KV secret whose keys are configuration variables,
// e.g. {"DB_PASSWORD": "..."}.
type VaultConfig struct {
	Enabled   bool
	Addr      string
	Token     string
	Namespace string
	Mount     string
	Path      string
	KVVersion int
	Timeout   time.Duration
	Overwrite bool
}

func vaultConfig(v *viper.Viper) VaultConfig {
	return VaultConfig{
		Enabled:   v.GetBool("VAULT_ENABLED"),
		Addr:      v.GetString("VAULT_ADDR"),
		Token:     v.GetString("VAULT_TOKEN"),
		Namespace: v.GetString("VAULT_NAMESPACE"),
		Mount:     v.GetString("VAULT_MOUNT"),
		Path:      v.GetString("VAULT_PATH"),
		KVVersion: v.GetInt("VAULT_KV_VERSION"),
		Timeout:   time.Duration(v.GetInt("VAULT_TIMEOUT_MS")) * time.Millisecond,
		Overwrite: v.GetBool("VAULT_OVERWRITE"),
	}
}

// applyVaultSecrets layers the secret's keys over v. Variables already set in
// the process environment win unless Overwrite is set.
func applyVaultSecrets(ctx context.Context, v *viper.Viper, cfg VaultConfig) (int, error) {
	if !cfg.Enabled {
		return 0, nil
	}
	if cfg.Addr == "" || cfg.Token == "" || cfg.Path == "" {
		return 0, errors.New("vault configuration incomplete (VAULT_ADDR, VAULT_TOKEN, VAULT_PATH)")
	}

	secrets, err := fetchVaultSecret(ctx, cfg)
	if err != nil {
		return 0, err
	}

	applied := 0
	for key, value := range secrets {
		if _, explicit := os.LookupEnv(key); explicit && !cfg.Overwrite {
			continue
		}
		v.Set(key, stringifyVaultValue(value))
		applied++
	}
	return applied, nil
}

func fetchVaultSecret(ctx context.Context, cfg VaultConfig) (map[string]interface{}, error) {
	endpoint, err := vaultURL(cfg.Addr, cfg.Mount, cfg.Path, cfg.KVVersion)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Vault-Token", cfg.Token)
	if cfg.Namespace != "" {
		req.Header.Set("X-Vault-Namespace", cfg.Namespace)
	}

	resp, err := (&http.Client{Timeout: cfg.Timeout}).Do(req)
	if err != nil {
		return nil, fmt.Errorf("vault request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("vault fetch failed: %s %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("vault response is not JSON: %w", err)
	}
	if payload.Data == nil {
		return nil, errors.New("vault response missing data")
	}
	if cfg.KVVersion == 1 {
		return payload.Data, nil
	}

	// KV v2 nests the secret under data.data
	inner, ok := payload.Data["data"].(map[string]interface{})
	if !ok {
		return nil, errors.New("vault response missing data for KV v2")
	}
	return inner, nil
}

func vaultURL(addr, mount, path string, kvVersion int) (string, error) {
	addr = strings.TrimRight(addr, "/")
	mount = strings.Trim(mount, "/")
	path = strings.TrimLeft(path, "/")
	if addr == "" || mount == "" || path == "" {
		return "", errors.New("vault address, mount, and path must be set")
	}
	if kvVersion == 1 {
		return fmt.Sprintf("%s/v1/%s/%s", addr, mount, path), nil
	}
	return fmt.Sprintf("%s/v1/%s/data/%s", addr, mount, path), nil
}

func stringifyVaultValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
