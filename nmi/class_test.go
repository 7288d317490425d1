package nmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClass_Outranks(t *testing.T) {
	assert := assert.New(t)

	assert.True(CLASS_UNMI.Outranks(CLASS_RNMI))
	assert.False(CLASS_RNMI.Outranks(CLASS_UNMI))
	assert.False(CLASS_UNMI.Outranks(CLASS_UNMI))
	assert.False(CLASS_RNMI.Outranks(CLASS_RNMI))
}

func TestParseClass(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		class Class
		ok    bool
	}){
		{"UNMI", CLASS_UNMI, true},
		{"unmi", CLASS_UNMI, true},
		{"Rnmi", CLASS_RNMI, true},
		{"nmi", CLASS_UNMI, false},
		{"", CLASS_UNMI, false},
	}

	for _, entry := range table {
		class, err := ParseClass(entry.name)
		if entry.ok {
			assert.NoError(err, entry.name)
			assert.Equal(entry.class, class, entry.name)
		} else {
			assert.Equal(ErrClassInvalid(entry.name), err, entry.name)
		}
	}
}

func TestParseCause(t *testing.T) {
	assert := assert.New(t)

	cause, err := ParseCause("INTERRUPT")
	assert.NoError(err)
	assert.Equal(CAUSE_INTERRUPT, cause)

	cause, err = ParseCause("exception")
	assert.NoError(err)
	assert.Equal(CAUSE_EXCEPTION, cause)

	_, err = ParseCause("trap")
	assert.Equal(ErrCauseInvalid("trap"), err)
}

func TestSlots(t *testing.T) {
	assert := assert.New(t)

	var slots []Slot
	for slot := range Slots() {
		slots = append(slots, slot)
	}

	assert.Equal([]Slot{
		{CLASS_UNMI, CAUSE_INTERRUPT},
		{CLASS_UNMI, CAUSE_EXCEPTION},
		{CLASS_RNMI, CAUSE_INTERRUPT},
		{CLASS_RNMI, CAUSE_EXCEPTION},
	}, slots)

	// Early stop.
	count := 0
	for range Slots() {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestSlot_Vector(t *testing.T) {
	assert := assert.New(t)

	seen := map[uint32]bool{}
	for slot := range Slots() {
		vec := slot.Vector()
		assert.False(seen[vec], slot.String())
		assert.NotEqual(PC_ENTRY, vec)
		seen[vec] = true
	}

	assert.Equal(VEC_RNMI_INTERRUPT, Slot{CLASS_RNMI, CAUSE_INTERRUPT}.Vector())
	assert.Panics(func() { Slot{Class(7), CAUSE_INTERRUPT}.Vector() })
}

func TestStrings(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("UNMI", CLASS_UNMI.String())
	assert.Equal("RNMI", CLASS_RNMI.String())
	assert.Equal("Class(5)", Class(5).String())
	assert.Equal("interrupt", CAUSE_INTERRUPT.String())
	assert.Equal("exception", CAUSE_EXCEPTION.String())
	assert.Equal("rnmi-active", STATE_RNMI_ACTIVE.String())
	assert.Equal("UNMI exception", Slot{CLASS_UNMI, CAUSE_EXCEPTION}.String())
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]uint32{}
	for key, value := range Defines() {
		defines[key] = value
	}

	assert.Len(defines, 5)
	assert.Equal(VEC_UNMI_INTERRUPT, defines["VEC_UNMI_INTERRUPT"])
	assert.Equal(PC_ENTRY, defines["PC_ENTRY"])
}
