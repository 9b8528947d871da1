package blocking

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/otdb/opentdb"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...opentdb.Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]opentdb.Option{opentdb.WithBaseURL(server.URL)}, opts...)
	client := NewClient(opts...)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func triviaHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		fmt.Fprintf(w, `{"response_code":0,"results":[{"category":%q,"type":%q,"difficulty":%q,"question":%q,"correct_answer":%q,"incorrect_answers":[%q]}]}`,
			b64("Science & Nature"), b64("boolean"), b64("medium"), b64("Water boils at 100C at sea level."), b64("True"), b64("False"))
	}
}

func TestTrivia(t *testing.T) {
	client := newTestClient(t, triviaHandler(t))

	req := client.Trivia()
	require.NoError(t, req.SetQuestionCount(1))
	req.SetKind(opentdb.KindTrueOrFalse)

	resp, err := req.Send()
	require.NoError(t, err)
	assert.Equal(t, opentdb.ResponseSuccess, resp.ResponseCode)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, opentdb.CategoryScienceAndNature, resp.Results[0].Category)
	assert.True(t, resp.Results[0].IsCorrect("True"))
}

func TestErrorsPassThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "maintenance")
	})

	_, err := client.GlobalDetails().Send()
	require.Error(t, err)
	assert.ErrorIs(t, err, opentdb.ErrInternalServer)
	assert.Contains(t, err.Error(), "maintenance")
}

func TestTokenLifecycle(t *testing.T) {
	var generated atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("command") {
		case "request":
			n := generated.Add(1)
			fmt.Fprintf(w, `{"response_code":0,"response_message":"ok","token":"token-%d"}`, n)
		case "reset":
			assert.Equal(t, "token-2", r.URL.Query().Get("token"))
			fmt.Fprint(w, `{"response_code":0,"token":"token-2"}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	token, err := client.GenerateToken()
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	_, ok := client.Token()
	assert.False(t, ok)

	token, err = client.ResetToken()
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
	stored, ok := client.Token()
	require.True(t, ok)
	assert.Equal(t, "token-2", stored)

	token, err = client.ResetToken()
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
	assert.Equal(t, int32(2), generated.Load())

	client.ClearToken()
	_, ok = client.Token()
	assert.False(t, ok)
}

func TestWrapSharesToken(t *testing.T) {
	inner := opentdb.NewClient()
	client := Wrap(inner)
	defer client.Close()

	client.SetToken("abc")
	token, ok := inner.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
	assert.Same(t, inner, client.Async())
}

func TestNewRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api_count.php", r.URL.Path)
		assert.Equal(t, "category=9", r.URL.RawQuery)
		fmt.Fprint(w, `{"category_id":9,"category_question_count":{"total_question_count":42}}`)
	})

	resp, err := NewRequest[opentdb.CategoryDetails](client, "api_count.php?category=9").Send()
	require.NoError(t, err)
	assert.Equal(t, opentdb.CategoryGeneralKnowledge, resp.CategoryID)
	assert.Equal(t, 42, resp.QuestionCount.Total)
}

func TestClosedClient(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())

	_, err := client.Trivia().Send()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = client.GenerateToken()
	assert.ErrorIs(t, err, ErrClosed)
	assert.Zero(t, hits.Load())
}

func TestCloseCancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})

	errs := make(chan error, 1)
	go func() {
		_, err := client.GlobalDetails().Send()
		errs <- err
	}()

	<-started
	require.NoError(t, client.Close())

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, opentdb.ErrTransport)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight request was not cancelled")
	}
}

func TestCloneIndependentHandles(t *testing.T) {
	const handles = 4

	var arrived atomic.Int32
	allArrived := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if arrived.Add(1) == handles {
			close(allArrived)
		}
		select {
		case <-allArrived:
			fmt.Fprint(w, `{"overall":{"total_num_of_questions":1},"categories":{}}`)
		case <-time.After(5 * time.Second):
			w.WriteHeader(http.StatusGatewayTimeout)
		}
	}, opentdb.WithToken("abc"))

	clones := make([]*Client, handles)
	for i := range clones {
		clones[i] = client.Clone()
		defer clones[i].Close()
	}
	clones[0].SetToken("changed")
	token, _ := client.Token()
	assert.Equal(t, "abc", token)

	var wg sync.WaitGroup
	for _, c := range clones {
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			resp, err := c.GlobalDetails().Send()
			assert.NoError(t, err)
			assert.Equal(t, 1, resp.Overall.Total)
		}(c)
	}
	wg.Wait()
}

func TestSingleHandleSerializes(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		if n > maxInFlight.Load() {
			maxInFlight.Store(n)
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		fmt.Fprint(w, `{"overall":{},"categories":{}}`)
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.GlobalDetails().Send()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInFlight.Load())
}
