// Package config loads gdocs2md settings from .env files, the process
// environment and an optional TOML project file.
//
// Precedence, lowest first: built-in defaults, project file, ./.env,
// the file named by ENV_PATH (or --env-file), process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/gdocs2md/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gdocs2md/internal/core/domain"
	"github.com/custodia-labs/gdocs2md/internal/core/ports/driven"
	"github.com/custodia-labs/gdocs2md/internal/logger"
)

// Environment keys.
const (
	KeyEnvPath            = "ENV_PATH"
	KeyGitHubToken        = "GITHUB_TOKEN"
	KeyGitHubName         = "GITHUB_NAME"
	KeyGitHubEmail        = "GITHUB_EMAIL"
	KeyGitHubOwner        = "GITHUB_OWNER"
	KeyGitHubRepo         = "GITHUB_REPO"
	KeyGitHubPath         = "GITHUB_PATH"
	KeyGitHubBranch       = "GITHUB_BRANCH"
	KeyGitHubMessage      = "GITHUB_MESSAGE"
	KeyGitHubDefaultPhase = "GITHUB_DEFAULT_PHASE"
	KeyDriveFolderID      = "GDRIVE_FOLDER_ID"
	KeyDriveRecursive     = "GDRIVE_RECURSIVE"
	KeyDrivePageSize      = "GDRIVE_PAGE_SIZE"
	KeyGoogleCredentials  = "GOOGLE_APPLICATION_CREDENTIALS"
	KeyGoogleAccessToken  = "GOOGLE_ACCESS_TOKEN"
	KeyLocalRoot          = "LOCAL_ROOT"
	KeySuffix             = "SUFFIX"
	KeyExtension          = "EXTENSION"
	KeyForceCommit        = "FORCE_COMMIT"
	KeyExtractCover       = "EXTRACT_COVER"
)

// Keys lists every environment key read by Load.
var Keys = []string{
	KeyEnvPath, KeyGitHubToken, KeyGitHubName, KeyGitHubEmail, KeyGitHubOwner, KeyGitHubRepo,
	KeyGitHubPath, KeyGitHubBranch, KeyGitHubMessage, KeyGitHubDefaultPhase, KeyDriveFolderID,
	KeyDriveRecursive, KeyDrivePageSize, KeyGoogleCredentials, KeyGoogleAccessToken, KeyLocalRoot,
	KeySuffix, KeyExtension, KeyForceCommit, KeyExtractCover,
}

// projectKeys maps environment keys to project file keys.
// Secrets have no project file key.
var projectKeys = map[string]string{
	KeyGitHubName:         "github.name",
	KeyGitHubEmail:        "github.email",
	KeyGitHubOwner:        "github.owner",
	KeyGitHubRepo:         "github.repo",
	KeyGitHubPath:         "github.path",
	KeyGitHubMessage:      "github.message",
	KeyGitHubDefaultPhase: "github.default_phase",
	KeyDriveFolderID:      "drive.folder_id",
	KeyDriveRecursive:     "drive.recursive",
	KeyDrivePageSize:      "drive.page_size",
	KeyGoogleCredentials:  "drive.credentials_file",
	KeyLocalRoot:          "output.local_root",
	KeySuffix:             "output.suffix",
	KeyExtension:          "output.extension",
	KeyForceCommit:        "output.force_commit",
	KeyExtractCover:       "output.extract_cover",
}

// branchTable is the project file table holding the branch mapping.
const branchTable = "github.branches"

// DefaultDotEnv is the .env file read from the working directory.
const DefaultDotEnv = ".env"

// GitHub holds the repository sink settings.
type GitHub struct {
	Token        string
	Owner        string
	Repo         string
	Path         string
	Message      string
	DefaultPhase string
	Committer    domain.Committer
	Branches     domain.BranchMapping
}

// Enabled reports whether a GitHub target is configured.
func (g GitHub) Enabled() bool {
	return g.Owner != "" || g.Repo != ""
}

// Drive holds the document source settings.
type Drive struct {
	FolderID        string
	Recursive       bool
	PageSize        int
	CredentialsFile string
	AccessToken     string
}

// Output holds conversion and local sink settings.
type Output struct {
	LocalRoot    string
	Suffix       string
	Extension    string
	ForceCommit  bool
	ExtractCover bool
}

// Config is the resolved configuration of one run.
type Config struct {
	GitHub GitHub
	Drive  Drive
	Output Output

	// Files lists the configuration files that were read, in order.
	Files []string
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// DotEnvFile defaults to ./.env. A missing file is ignored.
	DotEnvFile string
	// EnvFile overrides ENV_PATH. It must exist when set.
	EnvFile string
	// ProjectFile is the TOML project file. Defaults to ./gdocs2md.toml.
	ProjectFile string
	// Store replaces the project file store.
	Store driven.ConfigStore
}

// Load resolves the configuration.
func Load(opts LoadOptions) (*Config, error) {
	store := opts.Store
	if store == nil {
		fileStore, err := file.NewConfigStore(opts.ProjectFile)
		if err != nil {
			return nil, fmt.Errorf("load project file: %w", err)
		}
		store = fileStore
	}

	v := viper.New()
	setDefaults(v, store)
	v.AutomaticEnv()

	cfg := &Config{}
	if _, err := os.Stat(store.Path()); err == nil {
		cfg.Files = append(cfg.Files, store.Path())
	}

	dotEnv := opts.DotEnvFile
	if dotEnv == "" {
		dotEnv = DefaultDotEnv
	}
	loaded, err := mergeEnvFile(v, dotEnv, false)
	if err != nil {
		return nil, err
	}
	if loaded {
		cfg.Files = append(cfg.Files, dotEnv)
	}

	envPath := opts.EnvFile
	if envPath == "" {
		envPath = v.GetString(KeyEnvPath)
	}
	if envPath != "" && envPath != dotEnv {
		if _, err := mergeEnvFile(v, envPath, true); err != nil {
			return nil, err
		}
		cfg.Files = append(cfg.Files, envPath)
	}

	branches, err := branchMapping(v.GetString(KeyGitHubBranch), store)
	if err != nil {
		return nil, err
	}

	cfg.GitHub = GitHub{
		Token:        v.GetString(KeyGitHubToken),
		Owner:        v.GetString(KeyGitHubOwner),
		Repo:         v.GetString(KeyGitHubRepo),
		Path:         v.GetString(KeyGitHubPath),
		Message:      v.GetString(KeyGitHubMessage),
		DefaultPhase: v.GetString(KeyGitHubDefaultPhase),
		Committer: domain.Committer{
			Name:  v.GetString(KeyGitHubName),
			Email: v.GetString(KeyGitHubEmail),
		},
		Branches: branches,
	}
	cfg.Drive = Drive{
		FolderID:        v.GetString(KeyDriveFolderID),
		Recursive:       v.GetBool(KeyDriveRecursive),
		PageSize:        v.GetInt(KeyDrivePageSize),
		CredentialsFile: v.GetString(KeyGoogleCredentials),
		AccessToken:     v.GetString(KeyGoogleAccessToken),
	}
	cfg.Output = Output{
		LocalRoot:    v.GetString(KeyLocalRoot),
		Suffix:       v.GetString(KeySuffix),
		Extension:    v.GetString(KeyExtension),
		ForceCommit:  v.GetBool(KeyForceCommit),
		ExtractCover: v.GetBool(KeyExtractCover),
	}

	logger.Debug("configuration files: %v", cfg.Files)
	return cfg, nil
}

// setDefaults installs built-in defaults, then project file values over them.
func setDefaults(v *viper.Viper, store driven.ConfigStore) {
	v.SetDefault(KeyDriveRecursive, true)
	v.SetDefault(KeyExtension, "md")
	v.SetDefault(KeyForceCommit, true)
	v.SetDefault(KeyExtractCover, false)

	for envKey, projectKey := range projectKeys {
		if val, ok := store.Get(projectKey); ok {
			v.SetDefault(envKey, val)
		}
	}
}

// mergeEnvFile merges a dotenv file into v.
func mergeEnvFile(v *viper.Viper, path string, required bool) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return false, nil
		}
		return false, fmt.Errorf("env file %s: %w", path, err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.MergeInConfig(); err != nil {
		return false, fmt.Errorf("read env file %s: %w", path, err)
	}
	return true, nil
}

// branchMapping parses GITHUB_BRANCH, falling back to the project file table.
func branchMapping(raw string, store driven.ConfigStore) (domain.BranchMapping, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.NewBranchMapping(store.GetStringMap(branchTable)), nil
	}
	entries, err := ParseBranches(raw)
	if err != nil {
		return nil, err
	}
	return domain.NewBranchMapping(entries), nil
}

// ParseBranches parses a phase to branch mapping written as YAML or JSON,
// e.g. {"default": "main", "draft": "drafts"}. A bare branch name maps the
// default phase.
func ParseBranches(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var entries map[string]string
	if err := yaml.Unmarshal([]byte(raw), &entries); err == nil {
		return entries, nil
	}

	var branch string
	if err := yaml.Unmarshal([]byte(raw), &branch); err == nil && branch != "" && !strings.ContainsAny(branch, "\n:") {
		return map[string]string{domain.DefaultPhase: branch}, nil
	}
	return nil, fmt.Errorf("%w: %s must be a mapping of phase to branch", domain.ErrInvalidInput, KeyGitHubBranch)
}

// Validate checks that the configuration can drive a conversion run.
func (c *Config) Validate() error {
	var errs []error

	if c.Drive.FolderID == "" {
		errs = append(errs, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, KeyDriveFolderID))
	}

	if c.GitHub.Enabled() {
		if c.GitHub.Token == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", domain.ErrAuthRequired, KeyGitHubToken))
		}
		if c.GitHub.Owner == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, KeyGitHubOwner))
		}
		if c.GitHub.Repo == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, KeyGitHubRepo))
		}
		if !c.GitHub.Branches.HasDefault() {
			errs = append(errs, fmt.Errorf("%s: %w", KeyGitHubBranch, domain.ErrNoDefaultBranch))
		}
		if (c.GitHub.Committer.Name == "") != (c.GitHub.Committer.Email == "") {
			errs = append(errs, fmt.Errorf("%w: %s and %s must be set together",
				domain.ErrInvalidInput, KeyGitHubName, KeyGitHubEmail))
		}
	} else if c.Output.LocalRoot == "" {
		errs = append(errs, fmt.Errorf("%w: set %s/%s or %s", domain.ErrNoSink, KeyGitHubOwner, KeyGitHubRepo, KeyLocalRoot))
	}

	return errors.Join(errs...)
}

// String renders the configuration with secrets redacted.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "github: owner=%s repo=%s path=%s token=%s branches=%v\n",
		c.GitHub.Owner, c.GitHub.Repo, c.GitHub.Path, logger.Redact(c.GitHub.Token), map[string]string(c.GitHub.Branches))
	fmt.Fprintf(&b, "drive: folder=%s recursive=%t credentials=%s access_token=%s\n",
		c.Drive.FolderID, c.Drive.Recursive, c.Drive.CredentialsFile, logger.Redact(c.Drive.AccessToken))
	fmt.Fprintf(&b, "output: local_root=%s suffix=%q extension=%s force_commit=%t extract_cover=%t",
		c.Output.LocalRoot, c.Output.Suffix, c.Output.Extension, c.Output.ForceCommit, c.Output.ExtractCover)
	return b.String()
}
