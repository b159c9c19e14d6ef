package execution_service

import (
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// resource caps applied to every execution. these are fixed per call and
// can not be overridden by the caller, the external backend enforces them.
const (
	cpuTimeLimitSeconds = 5
	memoryLimitKB       = 256000
)

// the backend enforces the cpu cap, so a round trip can never take much
// longer than the cap plus network latency. the client timeout only has
// to cover that worst case.
const defaultClientTimeout = (cpuTimeLimitSeconds + 10) * time.Second

const defaultJudgeURL = "http://localhost:2358"

// ResultKind classifies a normalized execution outcome so that callers
// can branch on kind instead of matching error strings.
type ResultKind string

const (
	ResultOK            ResultKind = "OK"
	ResultCompileError  ResultKind = "CompileError"
	ResultRuntimeError  ResultKind = "RuntimeError"
	ResultTimeLimit     ResultKind = "TimeLimitExceeded"
	ResultInternalError ResultKind = "InternalError"
)

// ExecutionRequest carries one piece of untrusted user code to run.
// It lives only for the duration of a single Execute call.
type ExecutionRequest struct {
	SourceCode string `json:"source_code" validate:"required"`
	Language   string `json:"language" validate:"required"`
	Stdin      string `json:"stdin"`
}

// ExecutionResult is the uniform shape every execution collapses into.
// Error is empty exactly when Kind is ResultOK. TimeMs and MemoryKB stay
// nil when the backend did not report them, zero is a valid measurement
// and must not be confused with unknown.
type ExecutionResult struct {
	Kind     ResultKind `json:"kind"`
	Output   string     `json:"output"`
	Error    string     `json:"error,omitempty"`
	TimeMs   *int       `json:"execution_time_ms,omitempty"`
	MemoryKB *int       `json:"memory_kb,omitempty"`
}

type ExecutionService struct {
	JudgeURL string
	APIHost  string
	APIKey   string
	Client   *http.Client
}

// NewFromEnv builds an ExecutionService from JUDGE_URL, JUDGE_API_HOST
// and JUDGE_API_KEY. Every variable has a safe default so a local
// self-hosted backend works with an empty environment.
func NewFromEnv() *ExecutionService {
	judgeURL := os.Getenv("JUDGE_URL")
	if judgeURL == "" {
		judgeURL = defaultJudgeURL
		log.Warnf("JUDGE_URL not found in environment. using default %s", judgeURL)
	}

	return &ExecutionService{
		JudgeURL: judgeURL,
		APIHost:  os.Getenv("JUDGE_API_HOST"),
		APIKey:   os.Getenv("JUDGE_API_KEY"),
		Client:   &http.Client{Timeout: defaultClientTimeout},
	}
}

// wire types of the external execution backend

type judgeSubmissionRequest struct {
	SourceCode   string `json:"source_code"`
	LanguageID   int    `json:"language_id"`
	Stdin        string `json:"stdin"`
	CPUTimeLimit int    `json:"cpu_time_limit"`
	MemoryLimit  int    `json:"memory_limit"`
}

type judgeStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type judgeSubmissionResponse struct {
	Stdout        *string     `json:"stdout"`
	Stderr        *string     `json:"stderr"`
	CompileOutput *string     `json:"compile_output"`
	Time          *string     `json:"time"`
	Memory        *float64    `json:"memory"`
	Status        judgeStatus `json:"status"`
}

// backend status ids. 3 is the single success code, everything else is
// surfaced as an error condition with its description.
const (
	statusAccepted          = 3
	statusTimeLimitExceeded = 5
	statusCompilationError  = 6
	statusRuntimeErrorFirst = 7
	statusRuntimeErrorLast  = 12
)
