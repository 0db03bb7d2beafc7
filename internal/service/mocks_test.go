package service

import (
	"context"
	"io"
	"net/http"

	"github.com/felixgeelhaar/rxclient/internal/apiclient"
)

// fakeRequester records requests and answers with a canned response
type fakeRequester struct {
	requests []*apiclient.Request
	body     string
	binary   bool
	err      error

	uploadField    string
	uploadFilename string
	uploadData     []byte
}

func (f *fakeRequester) Do(_ context.Context, req *apiclient.Request) (*apiclient.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &apiclient.Response{
		Client:     "fake",
		Method:     req.Method,
		Path:       req.Path,
		StatusCode: http.StatusOK,
		Body:       []byte(f.body),
		Binary:     req.Binary,
	}, nil
}

func (f *fakeRequester) PostMultipart(ctx context.Context, path, field, filename string, r io.Reader) (*apiclient.Response, error) {
	f.uploadField = field
	f.uploadFilename = filename
	f.uploadData, _ = io.ReadAll(r)
	return f.Do(ctx, &apiclient.Request{Method: http.MethodPost, Path: path})
}

func (f *fakeRequester) last() *apiclient.Request {
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}
