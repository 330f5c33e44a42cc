package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greeterArtifact = `{
  "contractName": "Greeter",
  "abi": [
    {"inputs":[{"internalType":"string","name":"_greeting","type":"string"}],"stateMutability":"nonpayable","type":"constructor"},
    {"inputs":[],"name":"greet","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"}
  ],
  "bytecode": "0x6080604052"
}`

func TestParse(t *testing.T) {
	a, err := Parse([]byte(greeterArtifact))
	require.NoError(t, err)
	assert.Equal(t, "Greeter", a.Name)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, a.Bytecode)
	assert.Contains(t, a.ABI.Methods, "greet")
	assert.Len(t, a.ABI.Constructor.Inputs, 1)
}

func TestParseRejectsInterfaces(t *testing.T) {
	_, err := Parse([]byte(`{"contractName":"IGreeter","abi":[],"bytecode":"0x"}`))
	require.ErrorContains(t, err, "no bytecode")
}

func TestStoreLayouts(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "contracts", "Greeter.sol")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "Greeter.json"), []byte(greeterArtifact), 0o644))

	a, err := Store{Dir: dir}.Load("Greeter")
	require.NoError(t, err)
	assert.Equal(t, "Greeter", a.Name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Flat.json"), []byte(greeterArtifact), 0o644))
	_, err = Store{Dir: dir}.Load("Flat")
	require.NoError(t, err)

	_, err = Store{Dir: dir}.Load("Missing")
	require.ErrorContains(t, err, "not found")

	_, err = Store{}.Load("Greeter")
	require.Error(t, err)
}
