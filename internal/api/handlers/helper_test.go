package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/emberwake/merch-cart/internal/models"
	"github.com/emberwake/merch-cart/internal/services/mocks"
	"github.com/emberwake/merch-cart/internal/utils/response"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSession = "0b8f3c52-8a4c-4d61-9f55-2f6a0c7f1e11"

// envelope mirrors response.APIResponse with the payload left raw.
type envelope struct {
	Success bool                    `json:"success"`
	Data    json.RawMessage         `json:"data"`
	Error   *response.ErrorResponse `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))

	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}

	return env
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}

	b, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewBuffer(b)
}

func modeIs(mode models.Mode) *mocks.ModeService {
	modes := new(mocks.ModeService)
	modes.On("Resolve", mock.Anything, testSession).Return(&models.ModeStatus{Mode: mode}, nil)

	return modes
}
