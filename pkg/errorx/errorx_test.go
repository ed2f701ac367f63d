package errorx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCoder struct{ code, status int }

func (c testCoder) Code() int         { return c.code }
func (c testCoder) HTTPStatus() int   { return c.status }
func (c testCoder) String() string    { return "test coder" }
func (c testCoder) Reference() string { return "" }

func TestWrapCParseCoder(t *testing.T) {
	Register(testCoder{code: 990001, status: http.StatusNotFound})

	base := errors.New("boom")
	err := WrapC(base, 990001, "lookup %d", 7)

	require.Error(t, err)
	assert.Equal(t, "lookup 7: boom", err.Error())
	assert.ErrorIs(t, err, base)
	assert.True(t, IsCode(err, 990001))

	coder := ParseCoder(err)
	assert.Equal(t, http.StatusNotFound, coder.HTTPStatus())
	assert.Equal(t, 990001, coder.Code())
}

func TestWrapCNil(t *testing.T) {
	assert.NoError(t, WrapC(nil, 990001, "nothing"))
	assert.Nil(t, ParseCoder(nil))
}

func TestParseCoderUnknown(t *testing.T) {
	coder := ParseCoder(errors.New("plain"))
	assert.Equal(t, ErrUnknown, coder.Code())
	assert.Equal(t, http.StatusInternalServerError, coder.HTTPStatus())

	coder = ParseCoder(WithCode(424242, "unregistered"))
	assert.Equal(t, ErrUnknown, coder.Code())
}

func TestMustRegisterDuplicate(t *testing.T) {
	MustRegister(testCoder{code: 990002, status: http.StatusBadRequest})
	assert.Panics(t, func() {
		MustRegister(testCoder{code: 990002, status: http.StatusBadRequest})
	})
}
