package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Storage   StorageConfig
	Store     StoreConfig
	Matcher   MatcherConfig
	Embedding EmbeddingConfig
}

type StorageConfig struct {
	Endpoint   string // S3-compatible endpoint, e.g. "storage.googleapis.com" or "localhost:9000"
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	PublicBase string // browser-accessible base URL including the bucket, e.g. "https://storage.googleapis.com/event-photos-demo"
}

type StoreConfig struct {
	MetadataPath string // path of the JSON photo index file
}

// MatcherMode selects the matching strategy implementation.
type MatcherMode string

const (
	ModePassthrough MatcherMode = "passthrough"
	ModeEmbedding   MatcherMode = "embedding"
)

type MatcherConfig struct {
	Mode              MatcherMode
	DistanceThreshold float64
	SearchLimit       int
}

type EmbeddingConfig struct {
	URL string // face embedding service, defaults to http://localhost:8000
	Dim int    // defaults to 512
}

// matcherDefaults mirrors the embedded defaults.yaml.
type matcherDefaults struct {
	Matcher struct {
		DistanceThreshold float64 `yaml:"distance_threshold"`
		SearchLimit       int     `yaml:"search_limit"`
	} `yaml:"matcher"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	var defaults matcherDefaults
	if err := yaml.Unmarshal(defaultsYAML, &defaults); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	bucket := envString("STORAGE_BUCKET", "event-photos-demo")

	return &Config{
		Storage: StorageConfig{
			Endpoint:   envString("STORAGE_ENDPOINT", "storage.googleapis.com"),
			AccessKey:  os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:  os.Getenv("STORAGE_SECRET_KEY"),
			Bucket:     bucket,
			UseSSL:     envString("STORAGE_USE_SSL", "true") == "true",
			PublicBase: envString("STORAGE_PUBLIC_BASE", "https://storage.googleapis.com/"+bucket),
		},
		Store: StoreConfig{
			MetadataPath: envString("METADATA_PATH", "photo_index.json"),
		},
		Matcher: MatcherConfig{
			Mode:              MatcherMode(envString("MATCHER_MODE", string(ModePassthrough))),
			DistanceThreshold: envFloat("MATCHER_DISTANCE_THRESHOLD", defaults.Matcher.DistanceThreshold),
			SearchLimit:       envInt("MATCHER_SEARCH_LIMIT", defaults.Matcher.SearchLimit),
		},
		Embedding: EmbeddingConfig{
			URL: os.Getenv("EMBEDDING_URL"),
			Dim: envInt("EMBEDDING_DIM", 512),
		},
	}
}
