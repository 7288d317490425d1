package scenario

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nmi/emulator"
)

const testScript = `
def nested():
    hook(RNMI, INTERRUPT, lambda: trigger(UNMI))
    trigger(RNMI)
    return fired(RNMI) and fired(UNMI)

def held():
    hook(UNMI, INTERRUPT, lambda: trigger(RNMI))
    trigger(UNMI)
    return fired(UNMI) and not fired(RNMI) and pending(RNMI)

def resume():
    seen = []
    def inner():
        seen.append(pc())
        seen.append(state())
    hook(UNMI, INTERRUPT, inner)
    hook(RNMI, INTERRUPT, lambda: trigger(UNMI))
    trigger(RNMI)
    return seen == [VEC_UNMI_INTERRUPT, "unmi-active"] and pc() == PC_ENTRY and state() == "idle"

def rearm():
    disable_interrupts()
    trigger(RNMI)
    clear(RNMI)
    trigger(RNMI)
    return fired(RNMI, INTERRUPT)

def exception():
    hook(RNMI, INTERRUPT, fault)
    trigger(RNMI)
    return fired(RNMI, EXCEPTION) and not fired(UNMI, EXCEPTION)

scenario("nested", nested)
scenario("held", held)
scenario("resume", resume)
scenario("rearm", rearm)
scenario("exception", exception, incomplete = True)
`

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	list, err := Load("test.star", testScript)
	assert.NoError(err)
	assert.Len(list, 5)

	titles := []string{}
	for _, sc := range list {
		titles = append(titles, sc.Title)
	}
	assert.Equal([]string{"nested", "held", "resume", "rearm", "exception"}, titles)
	assert.True(list[4].Incomplete)

	emu := emulator.NewEmulator(nil)
	for _, sc := range list {
		emu.Reset()
		ok, err := sc.Run(emu)
		assert.NoError(err, sc.Title)
		assert.True(ok, sc.Title)
	}
}

func TestLoad_Runner(t *testing.T) {
	assert := assert.New(t)

	list, err := Load("test.star", testScript)
	assert.NoError(err)

	output := &bytes.Buffer{}
	passed, err := (&Runner{Output: output}).Run(slices.Values(list))
	assert.NoError(err)
	assert.Equal(4, passed)
	assert.Contains(output.String(), "Test case 4: rearm\n")
	assert.NotContains(output.String(), "exception")
}

func TestLoad_Verdict(t *testing.T) {
	assert := assert.New(t)

	list, err := Load("fail.star", `
def wrong():
    hook(UNMI, INTERRUPT, lambda: trigger(RNMI))
    trigger(UNMI)
    return fired(RNMI)

scenario("wrong", wrong)
`)
	assert.NoError(err)

	passed, err := (&Runner{}).Run(slices.Values(list))
	assert.Equal(0, passed)
	assert.ErrorIs(err, ErrAssertion)
}

func TestLoad_Print(t *testing.T) {
	assert := assert.New(t)

	list, err := Load("print.star", `
def hello():
    print("hello from", state())
    return True

scenario("print", hello)
`)
	assert.NoError(err)

	output := &bytes.Buffer{}
	ok, err := list[0].Run(emulator.NewEmulator(output))
	assert.NoError(err)
	assert.True(ok)
	assert.Equal("hello from idle\n", output.String())
}

func TestLoad_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		script string
		text   string
	}){
		{"syntax", "def (", ""},
		{"empty", "x = 1\n", ErrScriptEmpty.Error()},
		{"outside", "trigger(UNMI)\n", ErrScriptOutside.Error()},
		{"class", "scenario('t', lambda: True)\nfired('XNMI')\n", ErrScriptOutside.Error()},
	}

	for _, entry := range table {
		_, err := Load(entry.name+".star", entry.script)
		assert.ErrorIs(err, ErrScript, entry.name)
		assert.ErrorContains(err, entry.text, entry.name)
	}
}

func TestLoad_RunErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		script string
		text   string
	}){
		{"class", "scenario('t', lambda: fired('XNMI'))\n", "'XNMI' is not an nmi class"},
		{"cause", "scenario('t', lambda: fired(UNMI, 'trap'))\n", "'trap' is not an nmi cause"},
		{"hook", "scenario('t', lambda: hook(UNMI, INTERRUPT, 3))\n", "must be callable"},
		{"fault", "scenario('t', lambda: fault())\n", "no nmi handler active"},
		{"reentrant", "def f():\n    hook(UNMI, INTERRUPT, lambda: trigger(UNMI))\n    trigger(UNMI)\nscenario('t', f)\n", "re-entrance"},
	}

	for _, entry := range table {
		list, err := Load(entry.name+".star", entry.script)
		assert.NoError(err, entry.name)

		ok, err := list[0].Run(emulator.NewEmulator(nil))
		assert.False(ok, entry.name)
		assert.ErrorIs(err, ErrScript, entry.name)
		assert.ErrorContains(err, entry.text, entry.name)
	}
}

func TestLoad_HookNone(t *testing.T) {
	assert := assert.New(t)

	list, err := Load("none.star", `
def f():
    hook(RNMI, INTERRUPT, lambda: trigger(UNMI))
    hook(RNMI, INTERRUPT, None)
    trigger(RNMI)
    return fired(RNMI) and not fired(UNMI)

scenario("unhook", f)
`)
	assert.NoError(err)

	ok, err := list[0].Run(emulator.NewEmulator(nil))
	assert.NoError(err)
	assert.True(ok)
}
