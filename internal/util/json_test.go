package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObjectPassthrough(t *testing.T) {
	payload, ok := ExtractJSONObject(`  {"matching":["Go"]}  `)
	require.True(t, ok)
	assert.Equal(t, `{"matching":["Go"]}`, payload)
}

func TestExtractJSONObjectFromProse(t *testing.T) {
	payload, ok := ExtractJSONObject("Вот результат:\n{\"name\":\"Анна\"}\nНадеюсь, помог.")
	require.True(t, ok)
	assert.Equal(t, `{"name":"Анна"}`, payload)
}

func TestExtractJSONObjectRejectsGarbage(t *testing.T) {
	_, ok := ExtractJSONObject("никакого json здесь нет")
	assert.False(t, ok)

	_, ok = ExtractJSONObject("{оборванный объект")
	assert.False(t, ok)
}
