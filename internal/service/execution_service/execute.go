package execution_service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Execute runs one piece of user code through the external sandboxed
// backend and normalizes whatever comes back. Backend failures of any
// shape end up in the result's Error field, never as a panic or a lost
// response, which keeps the grading logic a single branch on kind.
func (e *ExecutionService) Execute(
	ctx context.Context,
	req ExecutionRequest,
) ExecutionResult {
	// resolve the language before spending anything on the backend
	languageID, err := ResolveLanguage(req.Language)
	if err != nil {
		return ExecutionResult{
			Kind:  ResultInternalError,
			Error: err.Error(),
		}
	}

	// build the backend payload with the fixed resource caps
	payload := judgeSubmissionRequest{
		SourceCode:   req.SourceCode,
		LanguageID:   languageID,
		Stdin:        req.Stdin,
		CPUTimeLimit: cpuTimeLimitSeconds,
		MemoryLimit:  memoryLimitKB,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("unable to marshal execution payload, %v", err)
		return ExecutionResult{
			Kind:  ResultInternalError,
			Error: "failed to prepare execution request",
		}
	}

	url := e.JudgeURL + "/submissions?base64_encoded=false&wait=true"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Errorf("unable to build execution request, %v", err)
		return ExecutionResult{
			Kind:  ResultInternalError,
			Error: "failed to prepare execution request",
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if e.APIHost != "" {
		httpReq.Header.Set("X-RapidAPI-Host", e.APIHost)
	}
	if e.APIKey != "" {
		httpReq.Header.Set("X-RapidAPI-Key", e.APIKey)
	}

	// the call blocks until the backend finishes or its own timeout
	// fires, bounded by the cpu cap plus network latency
	resp, err := e.Client.Do(httpReq)
	if err != nil {
		log.Errorf("execution backend unreachable, %v", err)
		return ExecutionResult{
			Kind:  ResultInternalError,
			Error: "code execution backend is unavailable",
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Errorf(
			"execution backend returned status %d, body: %s",
			resp.StatusCode,
			string(raw),
		)
		return ExecutionResult{
			Kind:  ResultInternalError,
			Error: fmt.Sprintf("code execution backend returned status %d", resp.StatusCode),
		}
	}

	var judgeResp judgeSubmissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&judgeResp); err != nil {
		log.Errorf("malformed response from execution backend, %v", err)
		return ExecutionResult{
			Kind:  ResultInternalError,
			Error: "malformed response from code execution backend",
		}
	}

	return normalizeResponse(judgeResp)
}

// normalizeResponse folds the backend's status taxonomy into the tagged
// result shape of this service.
func normalizeResponse(resp judgeSubmissionResponse) ExecutionResult {
	result := ExecutionResult{
		TimeMs:   parseTimeMs(resp.Time),
		MemoryKB: parseMemoryKB(resp.Memory),
	}

	if resp.Status.ID == statusAccepted {
		result.Kind = ResultOK
		if resp.Stdout != nil {
			result.Output = *resp.Stdout
		}
		return result
	}

	result.Kind = classifyStatus(resp.Status.ID)
	result.Error = resp.Status.Description

	// attach the compiler or runtime message so the user can debug
	detail := ""
	if resp.CompileOutput != nil && strings.TrimSpace(*resp.CompileOutput) != "" {
		detail = *resp.CompileOutput
	} else if resp.Stderr != nil && strings.TrimSpace(*resp.Stderr) != "" {
		detail = *resp.Stderr
	}
	if detail != "" {
		result.Error = fmt.Sprintf("%s: %s", resp.Status.Description, strings.TrimSpace(detail))
	}

	// partial output is still useful on a failed run
	if resp.Stdout != nil {
		result.Output = *resp.Stdout
	}
	return result
}

func classifyStatus(id int) ResultKind {
	switch {
	case id == statusCompilationError:
		return ResultCompileError
	case id == statusTimeLimitExceeded:
		return ResultTimeLimit
	case id >= statusRuntimeErrorFirst && id <= statusRuntimeErrorLast:
		return ResultRuntimeError
	default:
		return ResultInternalError
	}
}

// parseTimeMs converts the backend's wall time, reported as a string of
// seconds, into whole milliseconds. An absent or unparseable value stays
// nil instead of defaulting to zero.
func parseTimeMs(t *string) *int {
	if t == nil {
		return nil
	}
	seconds, err := strconv.ParseFloat(*t, 64)
	if err != nil {
		log.Warnf("cannot parse execution time %q from backend, %v", *t, err)
		return nil
	}
	ms := int(seconds*1000 + 0.5)
	return &ms
}

func parseMemoryKB(m *float64) *int {
	if m == nil {
		return nil
	}
	kb := int(*m)
	return &kb
}
