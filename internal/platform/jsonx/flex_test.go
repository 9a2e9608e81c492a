package jsonx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt(t *testing.T) {
	var ids []FlexInt
	require.NoError(t, json.Unmarshal([]byte(`[2,"5",7.0,null," 9 "]`), &ids))
	assert.Equal(t, []FlexInt{2, 5, 7, 0, 9}, ids)

	var bad FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`2.5`), &bad))
}

func TestFlexString(t *testing.T) {
	var v struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":3,"b":"filhote","c":null}`), &v))
	assert.Equal(t, FlexString("3"), v.A)
	assert.Equal(t, FlexString("filhote"), v.B)
	assert.Equal(t, FlexString(""), v.C)
}

func TestFlexBool(t *testing.T) {
	var v []FlexBool
	require.NoError(t, json.Unmarshal([]byte(`[1,0,true,false,"1",null]`), &v))
	assert.Equal(t, []FlexBool{true, false, true, false, true, false}, v)

	var bad FlexBool
	assert.Error(t, json.Unmarshal([]byte(`"talvez"`), &bad))
}
