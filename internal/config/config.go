package config

import (
	"os"
	"strconv"
)

type Config struct {
	Storage StorageConfig
	Vision  VisionConfig
	Camera  CameraConfig
	Web     WebConfig
}

// StorageConfig holds the paths of all persisted state. Everything is
// flat-file: the dataset is a directory tree, the model and label registry
// are rewritten in full on every training run, the ledger and user store
// are CSV.
type StorageConfig struct {
	DatasetDir string // root of per-identity sample directories
	ModelPath  string // serialized LBPH classifier state
	LabelsPath string // identity -> label mapping (YAML)
	LedgerPath string // attendance CSV
	UsersPath  string // registered user profiles CSV
}

type VisionConfig struct {
	Detector        string  // "haar" (OpenCV cascade) or "pigo" (pure Go)
	CascadePath     string  // Haar cascade XML for the haar detector
	PigoCascadePath string  // binary cascade for the pigo detector
	Threshold       float64 // prediction distances below this count as a match
	ScaleFactor     float64 // detection pyramid scale step
	MinNeighbors    int     // minimum neighbor rectangles to keep a detection
}

type CameraConfig struct {
	Device int // capture device ID, usually 0
}

type WebConfig struct {
	SessionSecret string // secret for signing session cookies
}

// envInt reads an environment variable and parses it as a non-negative integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
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

// envString reads an environment variable with a default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Storage: StorageConfig{
			DatasetDir: envString("DATASET_DIR", "dataset"),
			ModelPath:  envString("MODEL_PATH", "trainer.yml"),
			LabelsPath: envString("LABELS_PATH", "labels.yml"),
			LedgerPath: envString("ATTENDANCE_PATH", "attendance.csv"),
			UsersPath:  envString("USERS_PATH", "users.csv"),
		},
		Vision: VisionConfig{
			Detector:        envString("FACE_DETECTOR", "haar"),
			CascadePath:     envString("CASCADE_PATH", "haarcascade_frontalface_default.xml"),
			PigoCascadePath: envString("PIGO_CASCADE_PATH", "facefinder"),
			Threshold:       envFloat("RECOGNITION_THRESHOLD", 80),
			ScaleFactor:     envFloat("DETECT_SCALE_FACTOR", 1.1),
			MinNeighbors:    envInt("DETECT_MIN_NEIGHBORS", 5),
		},
		Camera: CameraConfig{
			Device: envInt("CAMERA_DEVICE", 0),
		},
		Web: WebConfig{
			SessionSecret: os.Getenv("WEB_SESSION_SECRET"),
		},
	}
}
