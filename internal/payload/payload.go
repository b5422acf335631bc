// Package payload reads Redfish resource payloads from disk and streams
// payload trees for validation. It probes the @odata identity annotations
// without decoding full documents; decoding belongs to the caller.
package payload

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// PayloadSuffix is the file suffix payload documents carry.
const PayloadSuffix = ".json"

// The @odata annotation paths, escaped for gjson: '@' begins a modifier and
// '.' separates path components.
const (
	odataTypePath = `\@odata\.type`
	odataIDPath   = `\@odata\.id`
)

// Source is one payload document read from disk, with its resource identity
// annotations probed out. OdataType has any leading '#' removed.
type Source struct {
	Path      string
	Data      []byte
	OdataType string
	OdataID   string
}

// Read loads a payload document and probes its identity annotations.
func Read(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, &UnreadablePayloadError{Path: path, Wrapped: err}
	}
	if !gjson.ValidBytes(data) {
		return Source{}, &InvalidPayloadError{Path: path}
	}

	return Source{
		Path:      path,
		Data:      data,
		OdataType: strings.TrimPrefix(gjson.GetBytes(data, odataTypePath).String(), "#"),
		OdataID:   gjson.GetBytes(data, odataIDPath).String(),
	}, nil
}

// Result is one streamed result from a payload tree walk.
type Result struct {
	Source Source
	Err    error
}

// Walk walks root and streams every payload document found over the returned
// channel, allowing consumers to validate in parallel with the filesystem
// traversal. Dot-directories are skipped. The channel closes when the walk
// finishes or the context is cancelled.
func Walk(ctx context.Context, root string) <-chan Result {
	resC := make(chan Result, 1)

	go func() {
		defer close(resC)

		err := filepath.Walk(root, walkFunc(ctx, resC))
		if err != nil {
			select {
			case <-ctx.Done():
				return
			case resC <- Result{Err: err}:
			}
		}
	}()

	return resC
}

func walkFunc(ctx context.Context, resC chan<- Result) filepath.WalkFunc {
	return func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(info.Name(), PayloadSuffix) {
			return nil
		}

		src, rErr := Read(path)
		if rErr != nil {
			return rErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case resC <- Result{Source: src}:
		}

		return nil
	}
}
