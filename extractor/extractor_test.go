package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/mcprpc/contract"
)

const imageWorker = `import { WorkerEntrypoint } from 'cloudflare:workers';
import { ProxyToSelf } from 'workers-mcp';

export default class MyWorker extends WorkerEntrypoint<Env> {
	/**
	 * Generate an image using the ` + "`flux-1-schnell`" + ` model. Works best with 8 steps.
	 *
	 * @param {string} prompt - A text description of the image you want to generate.
	 * @param {number} steps - The number of diffusion steps. Must be between 4 and 8, inclusive.
	 * */
	async generateImage(prompt: string, steps: number) {
		const response = await this.env.AI.run('@cf/black-forest-labs/flux-1-schnell', {
			prompt,
			steps,
		});
		// Convert from base64 string
		const binaryString = atob(response.image);
		const img = Uint8Array.from(binaryString, (m) => m.codePointAt(0)!);
		return new Response(img, { headers: { 'Content-Type': 'image/jpeg' } });
	}

	/**
	 * @ignore
	 **/
	async fetch(request: Request): Promise<Response> {
		return new ProxyToSelf(this).fetch(request);
	}
}
`

const namedExports = `/**
 * Math helpers.
 */
export class Calculator {
  /**
   * Add two numbers.
   * @param {number} a - first
   * @param {number} [b=1] - second
   * @returns {number} the sum
   * @example
   * add(1, 2)
   */
  add(a: number, b = 1): number {
    return a + b
  }

  /**
   * Describe a value.
   * @param {string|number} value - anything
   */
  describe(value) {
    return ` + "`${value}`" + `
  }

  /** a counter, not a tool */
  count = 0

  /** computed value */
  get total(): number {
    return 1
  }

  undocumented() {}
}

class Internal {
  /**
   * Hidden
   */
  run() {}
}

export class Empty {}

export { Internal as Renamed }
`

const staticsWorker = `class Worker extends WorkerEntrypoint {
  /**
   * Resources exposed by the worker.
   */
  static Resources = {
    /** The project readme */
    readme: 'Hello',
    /**
     * Current version
     * @returns {string} version string
     */
    version: (env) => env.VERSION,
    /** Answer */
    answer: 42,
  }

  /**
   * Say hello.
   * @param {string} name - who
   */
  async hello(name) {
    return ` + "`hello ${name}`" + `
  }
}

export default Worker
`

func TestExtract_DefaultExport(t *testing.T) {
	result, err := Extract([]byte(imageWorker))
	require.NoError(t, err)
	require.Len(t, result.Contracts, 1)
	worker := result.Contracts["MyWorker"]
	require.NotNil(t, worker)
	assert.True(t, worker.IsDefault())
	assert.Nil(t, worker.Description)
	require.Len(t, worker.Methods, 1)
	method := worker.Methods[0]
	assert.Equal(t, "generateImage", method.Name)
	assert.Equal(t, "Generate an image using the `flux-1-schnell` model. Works best with 8 steps.", method.Description)
	assert.EqualValues(t, []*contract.Param{
		{Name: "prompt", Type: "string", Description: "A text description of the image you want to generate."},
		{Name: "steps", Type: "number", Description: "The number of diffusion steps. Must be between 4 and 8, inclusive."},
	}, method.Params)
	assert.Nil(t, method.Returns)
	assert.Empty(t, result.Warnings)
	assert.Same(t, worker, result.Contracts.Default())
}

func TestExtract_NamedExports(t *testing.T) {
	result, err := Extract([]byte(namedExports))
	require.NoError(t, err)
	assert.Equal(t, []string{"Calculator", "Empty", "Internal"}, result.Contracts.Names())
	assert.Nil(t, result.Contracts.Default())

	calculator := result.Contracts["Calculator"]
	assert.Equal(t, "Calculator", *calculator.ExportedAs)
	assert.Equal(t, "Math helpers.", *calculator.Description)
	require.Len(t, calculator.Methods, 2)

	add := calculator.Methods[0]
	assert.Equal(t, "add", add.Name)
	assert.EqualValues(t, []*contract.Param{
		{Name: "a", Type: "number", Description: "first"},
		{Name: "b", Type: "number", Description: "second", Optional: true},
	}, add.Params)
	assert.Equal(t, &contract.Return{Type: "number", Description: "the sum"}, add.Returns)
	assert.Equal(t, []string{"add(1, 2)"}, add.Examples)
	assert.Equal(t, []string{"a"}, add.Required())

	describe := calculator.Methods[1]
	assert.Equal(t, "describe", describe.Name)
	require.Len(t, describe.Params, 1)
	assert.Equal(t, contract.UnknownType, describe.Params[0].Type)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "describe", result.Warnings[0].Name)

	renamed := result.Contracts["Internal"]
	assert.Equal(t, "Renamed", *renamed.ExportedAs)
	require.Len(t, renamed.Methods, 1)
	assert.Equal(t, "run", renamed.Methods[0].Name)
	assert.Equal(t, "Hidden", renamed.Methods[0].Description)

	assert.Empty(t, result.Contracts["Empty"].Methods)
}

func TestExtract_Statics(t *testing.T) {
	result, err := Extract([]byte(staticsWorker))
	require.NoError(t, err)
	worker := result.Contracts.Default()
	require.NotNil(t, worker)
	assert.Same(t, worker, result.Contracts["Worker"])
	require.Len(t, worker.Methods, 1)
	assert.Equal(t, "hello", worker.Methods[0].Name)
	assert.EqualValues(t, map[string][]*contract.StaticMember{
		"Resources": {
			{Name: "readme", Type: "string", Description: "The project readme"},
			{Name: "version", Type: "string", Description: "Current version"},
			{Name: "answer", Type: "number", Description: "Answer"},
		},
	}, worker.Statics)
}

func TestExtract_AnonymousDefault(t *testing.T) {
	source := `export default class extends Base {
  /**
   * Run it.
   * @param {boolean} [force] - force run
   */
  run(force) {}
}
`
	result, err := Extract([]byte(source))
	require.NoError(t, err)
	worker := result.Contracts[DefaultExportName]
	require.NotNil(t, worker)
	assert.True(t, worker.IsDefault())
	require.Len(t, worker.Methods, 1)
	assert.True(t, worker.Methods[0].Params[0].Optional)
	assert.Equal(t, "boolean", worker.Methods[0].Params[0].Type)
}

func TestExtract_Lexing(t *testing.T) {
	source := "export class Tricky {\n" +
		"  /** First */\n" +
		"  first() {\n" +
		"    const s = \"}{\";\n" +
		"    const t = `${ { a: '}' }.a }`;\n" +
		"    const r = /[}{]+/g;\n" +
		"    // }\n" +
		"    /* { */\n" +
		"    return s + t + r;\n" +
		"  }\n" +
		"\n" +
		"  /** Second */\n" +
		"  async second(): Promise<{ ok: boolean }> {\n" +
		"    return { ok: true }\n" +
		"  }\n" +
		"}\n"
	result, err := Extract([]byte(source))
	require.NoError(t, err)
	tricky := result.Contracts["Tricky"]
	require.NotNil(t, tricky)
	require.Len(t, tricky.Methods, 2)
	assert.Equal(t, "first", tricky.Methods[0].Name)
	assert.Equal(t, "Second", tricky.Methods[1].Description)
}

func TestExtract_Errors(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expectOwner string
	}{
		{
			description: "method of a class that is not exported",
			source:      "class Hidden {\n  /** doc */\n  run() {}\n}\nexport class Other {}\n",
			expectOwner: "Hidden",
		},
		{
			description: "duplicate method",
			source:      "export class Dup {\n  /** one */\n  run() {}\n  /** two */\n  run() {}\n}\n",
			expectOwner: "Dup",
		},
		{
			description: "second default export",
			source:      "export default class A {}\nclass B {}\nexport { B as default }\n",
		},
	}
	for _, testCase := range testCases {
		_, err := Extract([]byte(testCase.source))
		require.Error(t, err, testCase.description)
		var compilationError *CompilationError
		require.True(t, errors.As(err, &compilationError), testCase.description)
		assert.Equal(t, testCase.expectOwner, compilationError.Owner, testCase.description)
	}
}

func TestExtract_Warnings(t *testing.T) {
	source := `export default class W {
  /**
   * Mixed.
   * @param {string} [mode] - optional first
   * @param value - no type
   * @returns {string|null} maybe
   */
  mixed(mode, value) {}
}
`
	result, err := Extract([]byte(source))
	require.NoError(t, err)
	method := result.Contracts["W"].Methods[0]
	assert.Equal(t, contract.UnknownType, method.Params[1].Type)
	assert.Equal(t, contract.UnknownType, method.Returns.Type)
	assert.Equal(t, []string{"value"}, method.Required())
	assert.Len(t, result.Warnings, 3)
}

func TestExtract_StoreFormat(t *testing.T) {
	source := "export default class Hello {\n  /**\n   * Greets.\n   * @param {string} name - who\n   */\n  greet(name) {}\n}\n"
	result, err := Extract([]byte(source))
	require.NoError(t, err)
	data, err := contract.Encode(result.Contracts)
	require.NoError(t, err)
	expect := `{
  "Hello": {
    "exported_as": "default",
    "description": null,
    "methods": [
      {
        "name": "greet",
        "description": "Greets.",
        "params": [
          {
            "name": "name",
            "type": "string",
            "description": "who",
            "optional": false
          }
        ],
        "returns": null
      }
    ],
    "statics": {}
  }
}
`
	assert.Equal(t, expect, string(data))
}

func TestService_Compile(t *testing.T) {
	ctx := context.Background()
	baseDir := t.TempDir()
	sourceURL := filepath.Join(baseDir, "src", "index.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(sourceURL), 0755))
	require.NoError(t, os.WriteFile(sourceURL, []byte(staticsWorker), 0644))
	storeURL := filepath.Join(baseDir, "dist", contract.Filename)

	fs := afs.New()
	service := New(fs, zerolog.Nop())
	result, err := service.Compile(ctx, sourceURL, storeURL)
	require.NoError(t, err)

	loaded, err := contract.NewStore(fs).Load(ctx, storeURL)
	require.NoError(t, err)
	assert.EqualValues(t, result.Contracts, loaded)

	_, err = service.Compile(ctx, "", storeURL)
	assert.Error(t, err)
}

func TestExtract_TopLevelStatements(t *testing.T) {
	source := `import { WorkerEntrypoint } from 'cloudflare:workers'
const VERSION = '1.0'
let counter = 0
function helper() { return counter++ }
if (VERSION) { helper() }

export class A {
  /** hi */
  hello() {}
}
`
	var result *Result
	var err error
	require.NotPanics(t, func() { result, err = Extract([]byte(source)) })
	require.NoError(t, err)
	require.Len(t, result.Contracts["A"].Methods, 1)
	assert.Equal(t, "hello", result.Contracts["A"].Methods[0].Name)
	assert.Equal(t, "hi", result.Contracts["A"].Methods[0].Description)
}

func TestExtract_Decorators(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expectKey   string
	}{
		{
			description: "decorator before export",
			source:      "/** Decorated worker */\n@dec()\nexport class D {\n  /** run */\n  run() {}\n}\n",
			expectKey:   "D",
		},
		{
			description: "decorator after export",
			source:      "/** Decorated worker */\nexport @sealed class D {\n  /** run */\n  run() {}\n}\n",
			expectKey:   "D",
		},
		{
			description: "decorator after export default",
			source:      "/** Decorated worker */\nexport default @ns.dec({a: 1}) class D {\n  /** run */\n  run() {}\n}\n",
			expectKey:   "D",
		},
	}
	for _, testCase := range testCases {
		result, err := Extract([]byte(testCase.source))
		require.NoError(t, err, testCase.description)
		entry := result.Contracts[testCase.expectKey]
		require.NotNil(t, entry, testCase.description)
		require.NotNil(t, entry.Description, testCase.description)
		assert.Equal(t, "Decorated worker", *entry.Description, testCase.description)
		require.Len(t, entry.Methods, 1, testCase.description)
	}
}
