package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanbook/shared/model"
)

type option struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func TestJSONList(t *testing.T) {
	t.Run("nil stored as empty array", func(t *testing.T) {
		var list model.JSONList[option]

		value, err := list.Value()
		require.NoError(t, err)
		assert.Equal(t, []byte("[]"), value)
	})

	t.Run("value and scan", func(t *testing.T) {
		list := model.JSONList[option]{{Name: "베란다", Price: 30000}}

		value, err := list.Value()
		require.NoError(t, err)

		var scanned model.JSONList[option]
		require.NoError(t, scanned.Scan(value))
		assert.Equal(t, list, scanned)

		var fromString model.JSONList[option]
		require.NoError(t, fromString.Scan(`[{"name":"a","price":1}]`))
		assert.Equal(t, int64(1), fromString[0].Price)
	})

	t.Run("scan null and bad input", func(t *testing.T) {
		list := model.JSONList[string]{"x"}
		require.NoError(t, list.Scan(nil))
		assert.Nil(t, list)

		assert.Error(t, list.Scan(42))
		assert.Error(t, list.Scan([]byte("{")))
	})
}
