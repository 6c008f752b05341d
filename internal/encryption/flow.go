package encryption

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/cipherloom-go/internal/errors"
)

// Direction selects encryption or decryption
type Direction string

const (
	DirEncrypt Direction = "encrypt"
	DirDecrypt Direction = "decrypt"
)

// ParseDirection accepts "encrypt"/"decrypt" and their short forms
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt", "enc", "e", "":
		return DirEncrypt, nil
	case "decrypt", "dec", "d":
		return DirDecrypt, nil
	}
	return "", errors.NewBadRequest(fmt.Sprintf("unknown direction: %s", s))
}

// Run is the single dispatch point: it builds the cipher for kind from p and
// applies it in direction dir.
func Run(ctx context.Context, kind Kind, dir Direction, message string, p Params) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c, err := NewCipher(kind, p)
	if err != nil {
		return "", err
	}

	start := time.Now()
	var out string
	switch dir {
	case DirEncrypt:
		out, err = c.Encrypt(message)
	case DirDecrypt:
		out, err = c.Decrypt(message)
	default:
		return "", errors.NewBadRequest(fmt.Sprintf("unknown direction: %s", dir))
	}
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("cipher", string(kind)).
		Str("direction", string(dir)).
		Int("in_len", len(message)).
		Int("out_len", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("cipher run")
	return out, nil
}

// Job is one entry of a batch
type Job struct {
	ID        string                 `json:"id" yaml:"id"`
	Cipher    string                 `json:"cipher" yaml:"cipher"`
	Direction string                 `json:"direction" yaml:"direction"`
	Message   string                 `json:"message" yaml:"message"`
	Params    map[string]interface{} `json:"params,omitempty" yaml:"params,omitempty"`
}

// JobResult is the outcome of one Job. Err is set instead of Result when the
// job failed; a failed job does not stop the batch.
type JobResult struct {
	ID     string `json:"id" yaml:"id"`
	Result string `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
	Err    error  `json:"-" yaml:"-"`
}

// RunJob resolves a Job's loose fields over base and runs it
func RunJob(ctx context.Context, base Params, job Job) (string, error) {
	kind, err := ParseKind(job.Cipher)
	if err != nil {
		return "", err
	}
	dir, err := ParseDirection(job.Direction)
	if err != nil {
		return "", err
	}
	p, err := base.Merge(job.Params)
	if err != nil {
		return "", err
	}
	return Run(ctx, kind, dir, job.Message, p)
}

// RunBatch runs jobs with at most concurrency in flight and returns one
// result per job, in order. Job params are decoded over base. The returned
// error is non-nil only when ctx is cancelled before every job ran.
func RunBatch(ctx context.Context, base Params, jobs []Job, concurrency int) ([]JobResult, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]JobResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := JobResult{ID: job.ID}
			if res.ID == "" {
				res.ID = fmt.Sprintf("%d", i+1)
			}
			out, err := RunJob(gctx, base, job)
			if err != nil {
				res.Err = err
				res.Error = err.Error()
			} else {
				res.Result = out
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
