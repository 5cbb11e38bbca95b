package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/catalog/pkg/catalog"
)

const (
	itemJSON = `{"type":"Item","data":{"category":"FashionAndAccesories","tags":["cotton"],` +
		`"name":"T-Shirt","description":"Plain tee","enabled":true}}`

	variationJSON = `{"type":"Variation","data":{"item_id":"item-1","name":"Large","sku":"TS-L",` +
		`"images":[],"upc":null,"enabled":true,"measurement_units":"Units","available_units":12,` +
		`"price_type":"Fixed","price_amount":9.99,"price_currency":"USD"}}`

	tieredJSON = `{"type":"Variation","data":{"item_id":"item-1","name":"Large","sku":"TS-L",` +
		`"images":[],"enabled":true,"measurement_units":"Units","available_units":12,` +
		`"price_type":"Tiered","price_amount":9.99,"price_currency":"USD"}}`

	documentJSON = `{"id":"doc-1","account":"acct-1","version":4,"created_at":1700000000,` +
		`"type":"Modification","data":{"item_id":"item-1","name":"Gift wrap","images":[],` +
		`"price_type":"Fixed","price_amount":1.5,"price_currency":"EUR","enabled":false}}`
)

// cliEnv is an isolated config and data directory pair.
type cliEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	for _, key := range []string{"CATALOG_ACCOUNT", "CATALOG_BACKEND", "CATALOG_LOG_LEVEL", "CATALOG_SYNC", "CATALOG_DATA_DIR"} {
		t.Setenv(key, "")
	}
	root := t.TempDir()
	return &cliEnv{
		t:         t,
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

type result struct {
	stdout string
	stderr string
	code   int
}

// exec runs the CLI with stdin and args against the environment's
// directories.
func (e *cliEnv) exec(stdin string, args ...string) result {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetIn(strings.NewReader(stdin))

	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code := run(root, full, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func (e *cliEnv) writeConfig(cfg configFile) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.configDir, 0o755))
	data, err := yaml.Marshal(&cfg)
	require.NoError(e.t, err)
	require.NoError(e.t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), data, 0o644))
}

func decodeDoc(t *testing.T, out string) catalog.Document[string, string] {
	t.Helper()
	doc, err := catalog.DecodeDocument[string, string]([]byte(out))
	require.NoError(t, err, "output: %s", out)
	return doc
}

func TestVersion(t *testing.T) {
	env := newCLIEnv(t)
	res := env.exec("", "version")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "catalog v"+Version)
	assert.Contains(t, res.stdout, modulePath)
}

func TestInit(t *testing.T) {
	env := newCLIEnv(t)

	res := env.exec("", "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Catalog initialized successfully")
	assert.FileExists(t, filepath.Join(env.dataDir, "documents.jsonl"))

	data, err := os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, env.dataDir, cfg.DataDir)

	// Running init again leaves config.yaml untouched.
	env.writeConfig(configFile{Backend: "sqlite", Account: "acct-9"})
	res = env.exec("", "init")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	data, err = os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "acct-9")
}

func TestDocumentLifecycle(t *testing.T) {
	env := newCLIEnv(t)

	res := env.exec(itemJSON, "--json", "put", "--account", "acct-1", "-")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	created := decodeDoc(t, res.stdout)
	assert.Equal(t, "acct-1", created.Account)
	assert.Equal(t, catalog.Version(1), created.Version)
	assert.Equal(t, catalog.ObjectItem, created.Object.Type())

	res = env.exec(itemJSON, "put", "--id", created.ID, "--account", "acct-1", "-")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "Stored Item "+created.ID+" (version 2)\n", res.stdout)

	res = env.exec("", "get", created.ID)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	got := decodeDoc(t, res.stdout)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, catalog.Version(2), got.Version)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)

	res = env.exec("", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "ID")
	assert.Contains(t, res.stdout, created.ID)
	assert.Contains(t, res.stdout, "T-Shirt")

	res = env.exec("", "delete", created.ID)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "Deleted "+created.ID+"\n", res.stdout)

	res = env.exec("", "get", created.ID)
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "document not found")

	res = env.exec("", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "No documents\n", res.stdout)
}

func TestPutFromFile(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "large.json")
	require.NoError(t, os.WriteFile(path, []byte(variationJSON), 0o644))

	res := env.exec("", "--json", "put", "--account", "acct-1", path)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	doc := decodeDoc(t, res.stdout)
	iv, ok := doc.Object.Variation()
	require.True(t, ok)
	assert.Equal(t, catalog.Fixed{Amount: 9.99, Currency: "USD"}, iv.Price)

	res = env.exec("", "put", "--account", "acct-1", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, exitUserError, res.code)
}

func TestPutAccountFromConfig(t *testing.T) {
	env := newCLIEnv(t)
	env.writeConfig(configFile{Backend: "sqlite", Account: "acct-from-config"})

	res := env.exec(itemJSON, "--json", "put", "-")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "acct-from-config", decodeDoc(t, res.stdout).Account)
}

func TestPutErrors(t *testing.T) {
	tests := []struct {
		name       string
		stdin      string
		args       []string
		wantStderr string
	}{
		{name: "no account", stdin: itemJSON, args: []string{"put", "-"}, wantStderr: "account must not be empty"},
		{
			name:       "unknown category",
			stdin:      strings.Replace(itemJSON, "FashionAndAccesories", "Bakery", 1),
			args:       []string{"put", "--account", "a", "-"},
			wantStderr: "unknown variant",
		},
		{name: "unknown price", stdin: tieredJSON, args: []string{"put", "--account", "a", "-"}, wantStderr: "unknown variant"},
		{name: "not json", stdin: "shirt", args: []string{"put", "--account", "a", "-"}, wantStderr: "malformed field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			res := env.exec(tt.stdin, tt.args...)
			assert.Equal(t, exitUserError, res.code)
			assert.Contains(t, res.stderr, tt.wantStderr)
		})
	}
}

func TestPutAccountMismatch(t *testing.T) {
	env := newCLIEnv(t)
	res := env.exec(itemJSON, "put", "--id", "doc-1", "--account", "acct-1", "-")
	require.Equal(t, exitSuccess, res.code, res.stderr)

	res = env.exec(itemJSON, "put", "--id", "doc-1", "--account", "acct-2", "-")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "another account")
}

func TestListFilters(t *testing.T) {
	env := newCLIEnv(t)
	for _, input := range []struct{ account, body string }{
		{"acct-1", itemJSON},
		{"acct-1", variationJSON},
		{"acct-2", variationJSON},
	} {
		res := env.exec(input.body, "put", "--account", input.account, "-")
		require.Equal(t, exitSuccess, res.code, res.stderr)
	}

	count := func(args ...string) int {
		t.Helper()
		res := env.exec("", append([]string{"--json", "list"}, args...)...)
		require.Equal(t, exitSuccess, res.code, res.stderr)
		var docs []json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &docs))
		return len(docs)
	}

	assert.Equal(t, 3, count())
	assert.Equal(t, 2, count("--type", "Variation"))
	assert.Equal(t, 1, count("--type", "Variation", "--account", "acct-2"))
	assert.Equal(t, 2, count("--item-id", "item-1"))
	assert.Equal(t, 0, count("--account", "nobody"))

	res := env.exec("", "list", "--type", "Bundle")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "invalid filter")
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLines []string
	}{
		{
			name:      "variation object",
			input:     variationJSON,
			wantLines: []string{`Variation "Large" item=item-1 sku=TS-L upc=- price=9.99 USD available=12 Units enabled=true`},
		},
		{
			name:      "item object",
			input:     itemJSON,
			wantLines: []string{`Item "T-Shirt" category=FashionAndAccesories tags=[cotton] enabled=true`},
		},
		{
			name:  "document",
			input: documentJSON,
			wantLines: []string{
				"Document doc-1 account=acct-1 version=4 created=2023-11-14T22:13:20Z",
				`Modification "Gift wrap" item=item-1 price=1.50 EUR enabled=false`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			res := env.exec(tt.input, "decode", "-")
			require.Equal(t, exitSuccess, res.code, res.stderr)
			assert.Equal(t, strings.Join(tt.wantLines, "\n")+"\n", res.stdout)
		})
	}
}

func TestDecodeJSONIsCanonical(t *testing.T) {
	env := newCLIEnv(t)
	res := env.exec(documentJSON, "--json", "decode", "-")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.JSONEq(t, documentJSON, res.stdout)
}

func TestDecodeReportsCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unknown price type", input: tieredJSON, want: "(unknown variant)"},
		{name: "unknown object type", input: `{"type":"Bundle","data":{}}`, want: "(unknown variant)"},
		{name: "document without data", input: `{"id":"d","account":"a","version":1,"created_at":1,"type":"Item"}`, want: "(missing field)"},
		{name: "null name", input: strings.Replace(itemJSON, `"T-Shirt"`, "null", 1), want: "(malformed field)"},
		{name: "not an object", input: `[1,2]`, want: "(malformed field)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			res := env.exec(tt.input, "decode", "-")
			assert.Equal(t, exitUserError, res.code)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
}

func TestCategoriesAndUnits(t *testing.T) {
	env := newCLIEnv(t)

	res := env.exec("", "categories")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	assert.Len(t, lines, 19)
	assert.Equal(t, "Shop", lines[0])
	assert.Contains(t, lines, "Beuty")
	assert.Equal(t, "PaperWork", lines[18])

	res = env.exec("", "--json", "units")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	var units []string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &units))
	assert.Equal(t, []string{"Time", "Area", "Custom", "Generic", "Units", "Length", "Volume", "Weight"}, units)
}

func TestConfigErrors(t *testing.T) {
	t.Run("invalid log level", func(t *testing.T) {
		env := newCLIEnv(t)
		res := env.exec("", "--log-level", "loud", "list")
		assert.Equal(t, exitUserError, res.code)
	})

	t.Run("unknown backend", func(t *testing.T) {
		env := newCLIEnv(t)
		env.writeConfig(configFile{Backend: "postgres"})
		res := env.exec("", "list")
		assert.Equal(t, exitUserError, res.code)
		assert.Contains(t, res.stderr, "unknown backend")
	})

	t.Run("backend from env", func(t *testing.T) {
		env := newCLIEnv(t)
		t.Setenv("CATALOG_BACKEND", "memory")
		res := env.exec("", "list")
		assert.Equal(t, exitUserError, res.code)
	})

	t.Run("on_close sync", func(t *testing.T) {
		env := newCLIEnv(t)
		env.writeConfig(configFile{Backend: "sqlite", Sync: "on_close", Account: "a"})
		res := env.exec(itemJSON, "put", "-")
		require.Equal(t, exitSuccess, res.code, res.stderr)
		data, err := os.ReadFile(filepath.Join(env.dataDir, "documents.jsonl"))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"T-Shirt"`)
	})
}

func TestUnknownCommand(t *testing.T) {
	env := newCLIEnv(t)
	res := env.exec("", "frobnicate")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "unknown command")
}
