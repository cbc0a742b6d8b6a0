package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormErrors(t *testing.T) {
	fe := FormErrors{}
	assert.False(t, fe.HasErrors())
	assert.Equal(t, "", fe.First("name"))

	fe.Add("price", "Enter a number.")
	fe.Add("name", "This field is required.")
	fe.Add("name", "Ensure this value has at most 200 characters.")

	assert.True(t, fe.HasErrors())
	assert.Equal(t, "This field is required.", fe.First("name"))
	assert.Len(t, fe.Get("name"), 2)
	assert.Equal(t,
		"name: This field is required.; name: Ensure this value has at most 200 characters.; price: Enter a number.",
		fe.Error())
}

func TestFormErrors_Merge(t *testing.T) {
	fe := FormErrors{"slug": {"taken"}}
	fe.Merge(FormErrors{"slug": {"invalid"}, NonFieldKey: {"oops"}})

	assert.Equal(t, []string{"taken", "invalid"}, fe["slug"])
	assert.Equal(t, "oops", fe.First(NonFieldKey))
}

func TestFormErrors_EmptySlicesAreNotErrors(t *testing.T) {
	fe := FormErrors{"name": nil}
	assert.False(t, fe.HasErrors())
}
