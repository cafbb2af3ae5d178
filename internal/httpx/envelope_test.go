package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeTable(t *testing.T) {
	tests := []struct {
		outcome Outcome
		code    string
		message string
	}{
		{OutcomeSystemError, "SYS-ERR0000", "システムエラーが発生しました。"},
		{OutcomeNotFound, "SYS-ERR0001", "対象情報が見つかりません。"},
		{OutcomeInvalidInput, "SYS-ERR0002", "入力値が不正です。"},
		{OutcomeFound, "APP-MSG0000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.outcome.Code())
			assert.Equal(t, tt.message, tt.outcome.Message())
		})
	}

	t.Run("unknown outcome", func(t *testing.T) {
		assert.Empty(t, Outcome(99).Code())
		assert.Empty(t, Outcome(99).Message())
	})
}

type info struct {
	Title string
}

func TestFound(t *testing.T) {
	env := Found(info{Title: "Dune"})

	assert.Equal(t, "APP-MSG0000", env.Status)
	assert.Empty(t, env.Message)
	require.NotNil(t, env.Data)
	assert.Equal(t, "Dune", env.Data.Title)
}

func TestNotFound(t *testing.T) {
	t.Run("without params", func(t *testing.T) {
		env := NotFound[info]()
		assert.Equal(t, "SYS-ERR0001", env.Status)
		assert.Equal(t, "対象情報が見つかりません。", env.Message)
		assert.Nil(t, env.Data)
	})

	t.Run("with params", func(t *testing.T) {
		env := NotFound[info]("id=7", "title=x")
		assert.Equal(t, "SYS-ERR0001", env.Status)
		assert.Equal(t, "対象情報が見つかりません。 [id=7, title=x]", env.Message)
		assert.Nil(t, env.Data)
	})
}

func TestInvalidInputAndSystemError(t *testing.T) {
	invalid := InvalidInput[info]()
	assert.Equal(t, "SYS-ERR0002", invalid.Status)
	assert.Nil(t, invalid.Data)

	sys := SystemError()
	assert.Equal(t, "SYS-ERR0000", sys.Status)
	assert.Equal(t, "システムエラーが発生しました。", sys.Message)
	assert.Nil(t, sys.Data)
}

func TestWriteEnvelope_JSONShape(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteEnvelope(w, Found([]info{{Title: "A"}, {Title: "B"}}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"Status":"APP-MSG0000","Message":"","Data":[{"Title":"A"},{"Title":"B"}]}`, w.Body.String())
	})

	t.Run("failure still 200 with null data", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteEnvelope(w, InvalidInput[info]())

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "SYS-ERR0002", body["Status"])
		v, ok := body["Data"]
		assert.True(t, ok, "Data key must be present")
		assert.Nil(t, v)
	})
}
