package scene

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_MarshalOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Spec{Mark: &Mark{Type: "bar"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mark":{"type":"bar"}}`, string(data))
}

func TestSpec_New(t *testing.T) {
	data, err := json.Marshal(New())
	require.NoError(t, err)
	assert.JSONEq(t, `{"$schema":"`+SchemaURL+`"}`, string(data))
}

func TestNull_MarshalsToJSONNull(t *testing.T) {
	data, err := json.Marshal(&Axis{Title: Null, Labels: False})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":null,"labels":false}`, string(data))
}

func TestChannel_ConditionWithFallback(t *testing.T) {
	ch := &Channel{
		Condition: &Condition{Param: "hover", Empty: False, Value: "#EA4667"},
		Value:     "#3A3A3A",
	}
	data, err := json.Marshal(ch)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"condition": {"param": "hover", "empty": false, "value": "#EA4667"},
		"value": "#3A3A3A"
	}`, string(data))
}

func TestParam_StaticValue(t *testing.T) {
	p := &Param{
		Name:   "hover",
		Select: &Select{Type: "point", Fields: []string{"intersection_id"}},
		Value:  []map[string]any{{"intersection_id": 0}},
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "hover",
		"select": {"type": "point", "fields": ["intersection_id"]},
		"value": [{"intersection_id": 0}]
	}`, string(data))
}

func TestSort_Marshal(t *testing.T) {
	data, err := json.Marshal(&Sort{Field: "count", Order: "descending"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"count","order":"descending"}`, string(data))
}
