package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"NoSuchBucket type", &types.NoSuchBucket{}, true},
		{"NotFound type", &types.NotFound{}, true},
		{"generic 404 code", &smithy.GenericAPIError{Code: "404"}, true},
		{"generic NoSuchBucket code", &smithy.GenericAPIError{Code: "NoSuchBucket"}, true},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNotFoundError(tt.err))
		})
	}
}

type recordedRequest struct {
	method string
	path   string
	body   string
}

func newFakeS3(t *testing.T, bucketStatus int) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var requests []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{r.Method, r.URL.Path, string(body)})
		mu.Unlock()

		if r.Method == http.MethodHead {
			w.WriteHeader(bucketStatus)
			return
		}
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), Options{
		Endpoint:  endpoint,
		Region:    "us-east-1",
		AccessKey: "AKIDEXAMPLE",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	return c
}

func TestPublishJoinCommand(t *testing.T) {
	srv, requests := newFakeS3(t, http.StatusOK)
	c := newTestClient(t, srv.URL)

	err := c.PublishJoinCommand(context.Background(), "bootstrap", "cluster/join.txt", "kubeadm join 10.0.0.10:6443 --token t")
	require.NoError(t, err)

	require.Len(t, *requests, 2)
	assert.Equal(t, http.MethodHead, (*requests)[0].method)
	assert.Equal(t, "/bootstrap", (*requests)[0].path)
	assert.Equal(t, http.MethodPut, (*requests)[1].method)
	assert.Equal(t, "/bootstrap/cluster/join.txt", (*requests)[1].path)
	assert.Equal(t, "kubeadm join 10.0.0.10:6443 --token t\n", (*requests)[1].body)
}

func TestPublishJoinCommand_MissingBucket(t *testing.T) {
	srv, requests := newFakeS3(t, http.StatusNotFound)
	c := newTestClient(t, srv.URL)

	err := c.PublishJoinCommand(context.Background(), "missing", "join.txt", "kubeadm join x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket missing does not exist")
	assert.Len(t, *requests, 1, "nothing is uploaded")
}

func TestPublishJoinCommand_Empty(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	err := c.PublishJoinCommand(context.Background(), "b", "k", "")
	require.Error(t, err)
}
