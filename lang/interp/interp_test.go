package interp_test

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/nmercier/golox/lang/interp"
	"github.com/nmercier/golox/lang/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run parses and interprets src with a fresh interpreter and returns the
// print output and the interpretation error, if any.
func run(t *testing.T, src string) (string, error) {
	t.Helper()

	prog, err := parser.ParseChunk(context.Background(), "test.lox", []byte(src))
	require.NoError(t, err, "parse error")

	var buf bytes.Buffer
	it := interp.New()
	it.Stdout = &buf
	err = it.Interpret(context.Background(), prog)
	return buf.String(), err
}

func runOK(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	require.NoError(t, err)
	return out
}

func lines(out string) []string {
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestArithmetic(t *testing.T) {
	cases := []struct{ src, want string }{
		{"print 1 + 2 * 3;", "7"},
		{"print (1 + 2) * 3;", "9"},
		{"print 10 - 2 - 3;", "5"},
		{"print 10 / 4;", "2.5"},
		{"print -3 + 1;", "-2"},
		{"print 0.1 + 0.2 == 0.3;", "false"}, // IEEE-754 doubles
		{"print 3.5;", "3.5"},
		{"print 3.0;", "3"},
		{"print 2 > 1;", "true"},
		{"print 2 >= 2;", "true"},
		{"print 1 < 1;", "false"},
		{"print 1 <= 1;", "true"},
		{"print 1 == 1.0;", "true"},
		{"print 1 != 2;", "true"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			assert.Equal(t, c.want+"\n", runOK(t, c.src))
		})
	}
}

func TestStrings(t *testing.T) {
	cases := []struct{ src, want string }{
		{`print "Hi, " + "world";`, "Hi, world"},
		{`print "n=" + 42;`, "n=42"},
		{`print 42 + "=n";`, "42=n"},
		{`print "v:" + nil;`, "v:nil"},
		{`print "b:" + true;`, "b:true"},
		{`print "" == "";`, "true"},
		{`print "a" == "b";`, "false"},
		{`print "1" == 1;`, "false"}, // no cross-type equality
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			assert.Equal(t, c.want+"\n", runOK(t, c.src))
		})
	}
}

func TestTruthiness(t *testing.T) {
	cases := []struct{ src, want string }{
		{"print !nil;", "true"},
		{"print !false;", "true"},
		{"print !true;", "false"},
		{"print !0;", "false"},      // 0 is truthy
		{`print !"";`, "false"},     // the empty string is truthy
		{"if (0) print 1;", "1\n"},  // already ends in \n, none added below
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			want := c.want
			if !strings.HasSuffix(want, "\n") {
				want += "\n"
			}
			assert.Equal(t, want, runOK(t, c.src))
		})
	}
}

func TestLogicalOperators(t *testing.T) {
	// the result is the deciding operand's value, not a coerced boolean
	cases := []struct{ src, want string }{
		{`print "a" or "b";`, "a"},
		{`print nil or "b";`, "b"},
		{`print false or false;`, "false"},
		{`print "a" and "b";`, "b"},
		{`print nil and "b";`, "nil"},
		{`print false and true;`, "false"},
		{"print 1 or 2 or 3;", "1"},
		{"print nil or false or 3;", "3"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			assert.Equal(t, c.want+"\n", runOK(t, c.src))
		})
	}
}

func TestShortCircuit(t *testing.T) {
	// side-effect probes prove the right operand is not evaluated
	out := runOK(t, `
fun probe() { print "evaluated"; return true; }
print true or probe();
print false and probe();
print false or probe();
`)
	assert.Equal(t, []string{"true", "false", "evaluated", "true"}, lines(out))
}

func TestVariables(t *testing.T) {
	out := runOK(t, `
var a = 1;
var b = 2;
a = a + b;
print a;
var a = 10; // redeclaration replaces the binding
print a;
print b = 5; // assignment is an expression
print b;
`)
	assert.Equal(t, []string{"3", "10", "5", "5"}, lines(out))
}

func TestChainedAssignment(t *testing.T) {
	out := runOK(t, "var a; var b; a = b = 1; print a; print b;")
	assert.Equal(t, []string{"1", "1"}, lines(out))
}

func TestUninitializedIsNil(t *testing.T) {
	assert.Equal(t, "nil\n", runOK(t, "var a; print a;"))
}

func TestLexicalScope(t *testing.T) {
	assert.Equal(t, "1\n", runOK(t, "var a = 1; { var a = 2; } print a;"))

	out := runOK(t, `
var a = 1;
var b = 2;
{
	var a = 10;
	print a + b;
}
print a;
`)
	assert.Equal(t, []string{"12", "1"}, lines(out))
}

func TestBlockSeesEnclosing(t *testing.T) {
	out := runOK(t, `
var a = 1;
{
	a = 2; // assignment walks the chain
	var b = a + 1;
	print b;
}
print a;
`)
	assert.Equal(t, []string{"3", "2"}, lines(out))
}

func TestIfElse(t *testing.T) {
	out := runOK(t, `
if (1 < 2) print "then"; else print "else";
if (1 > 2) print "then"; else print "else";
if (nil) print "unreached";
`)
	assert.Equal(t, []string{"then", "else"}, lines(out))
}

func TestWhile(t *testing.T) {
	out := runOK(t, "var i = 0; while (i < 3) { print i; i = i + 1; }")
	assert.Equal(t, []string{"0", "1", "2"}, lines(out))
}

func TestForLoop(t *testing.T) {
	out := runOK(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	assert.Equal(t, []string{"0", "1", "2"}, lines(out))
}

func TestForWhileEquivalence(t *testing.T) {
	for n := 0; n <= 4; n++ {
		limit := strconv.Itoa(n)
		forOut := runOK(t, "for (var i = 0; i < "+limit+"; i = i + 1) print i;")
		whileOut := runOK(t, "{ var i = 0; while (i < "+limit+") { print i; i = i + 1; } }")
		assert.Equal(t, whileOut, forOut, "n=%d", n)
	}
}

func TestForInductionVarScoped(t *testing.T) {
	_, err := run(t, "for (var i = 0; i < 1; i = i + 1) {} print i;")
	require.Error(t, err)
	assert.EqualError(t, err, "[line 1] Runtime Error: Undefined variable 'i'.")
}

func TestFunctions(t *testing.T) {
	out := runOK(t, `
fun add(a, b) { return a + b; }
print add(1, 2);
print add;
`)
	assert.Equal(t, []string{"3", "<fn add>"}, lines(out))
}

func TestFunctionImplicitNil(t *testing.T) {
	out := runOK(t, "fun f() {} print f();")
	assert.Equal(t, "nil\n", out)

	out = runOK(t, "fun f() { return; } print f();")
	assert.Equal(t, "nil\n", out)
}

func TestRecursion(t *testing.T) {
	out := runOK(t, `
fun fib(n) {
	if (n < 2) return n;
	return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
	assert.Equal(t, "55\n", out)
}

func TestNestedCalls(t *testing.T) {
	out := runOK(t, `
fun mk(a) { fun inner(b) { return a + b; } return inner; }
print mk(1)(2);
`)
	assert.Equal(t, "3\n", out)
}

func TestReturnUnwindsLoops(t *testing.T) {
	out := runOK(t, `
fun firstOver(limit) {
	for (var i = 0;; i = i + 1) {
		if (i > limit) return i;
	}
}
print firstOver(3);
`)
	assert.Equal(t, "4\n", out)
}

func TestClosureCapture(t *testing.T) {
	out := runOK(t, `
fun mk() {
	var x = 0;
	fun inc() { x = x + 1; return x; }
	return inc;
}
var c = mk();
print c();
print c();
`)
	assert.Equal(t, []string{"1", "2"}, lines(out))
}

func TestClosureCountersIndependent(t *testing.T) {
	out := runOK(t, `
fun makeCounter() {
	var n = 0;
	fun c() { n = n + 1; return n; }
	return c;
}
var a = makeCounter();
var b = makeCounter();
print a();
print a();
print b();
`)
	assert.Equal(t, []string{"1", "2", "1"}, lines(out))
}

func TestClosuresShareFrame(t *testing.T) {
	// two closures over the same enclosing scope alias the same variable
	out := runOK(t, `
fun mk() {
	var x = 0;
	fun inc() { x = x + 1; }
	fun get() { return x; }
	inc();
	inc();
	print get();
}
mk();
`)
	assert.Equal(t, "2\n", out)
}

func TestClosureCapturesDeclarationEnv(t *testing.T) {
	// the function body resolves names in the environment captured at
	// declaration, not in the caller's environment
	out := runOK(t, `
var x = "global";
fun show() { print x; }
{
	var x = "local";
	show();
}
`)
	assert.Equal(t, "global\n", out)
}

func TestFunctionEquality(t *testing.T) {
	// weak identity: functions compare equal by name
	out := runOK(t, `
fun f() {}
var g = f;
print f == g;
fun h() {}
print f == h;
print f == clock;
`)
	assert.Equal(t, []string{"true", "false", "false"}, lines(out))
}

func TestNativeClock(t *testing.T) {
	out := runOK(t, "print clock() > 0; print clock;")
	assert.Equal(t, []string{"true", "<native fn clock>"}, lines(out))
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct{ src, want string }{
		{"print -true;", "[line 1] Runtime Error: Operand must be a number."},
		{"print 1 - nil;", "[line 1] Runtime Error: Operands must be numbers."},
		{`print 1 < "a";`, "[line 1] Runtime Error: Operands must be numbers."},
		{"print true + false;", "[line 1] Runtime Error: Operands must be two numbers or two strings."},
		{"print 1 / 0;", "[line 1] Runtime Error: Division by zero."},
		{"print missing;", "[line 1] Runtime Error: Undefined variable 'missing'."},
		{"missing = 1;", "[line 1] Runtime Error: Undefined variable 'missing'."},
		{`"not callable"();`, "[line 1] Runtime Error: Can only call functions and classes."},
		{"return 1;", "[line 1] Runtime Error: Cannot return from top-level code."},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := run(t, c.src)
			require.Error(t, err)
			assert.EqualError(t, err, c.want)
		})
	}
}

func TestArityMismatch(t *testing.T) {
	out, err := run(t, `
fun f(a, b) { print "body"; }
f(1);
`)
	require.Error(t, err)
	assert.EqualError(t, err, "[line 3] Runtime Error: Expected 2 arguments but got 1.")
	// the body is never executed
	assert.Empty(t, out)

	_, err = run(t, "clock(1);")
	require.Error(t, err)
	assert.EqualError(t, err, "[line 1] Runtime Error: Expected 0 arguments but got 1.")
}

func TestUndefinedVarLineNumber(t *testing.T) {
	_, err := run(t, "var a = 1;\nprint a;\nprint missing;")
	require.Error(t, err)
	assert.EqualError(t, err, "[line 3] Runtime Error: Undefined variable 'missing'.")
}

func TestAssignUndefinedInBlock(t *testing.T) {
	// assignment never creates a binding at any scope
	_, err := run(t, "{ missing = 1; }")
	require.Error(t, err)
	assert.EqualError(t, err, "[line 1] Runtime Error: Undefined variable 'missing'.")
}

func TestErrorRestoresEnvironment(t *testing.T) {
	// after a runtime error inside a block, the same interpreter keeps
	// working at global scope
	prog1, err := parser.ParseChunk(context.Background(), "p1", []byte("var a = 1; { var a = 2; print 1 / 0; }"))
	require.NoError(t, err)
	prog2, err := parser.ParseChunk(context.Background(), "p2", []byte("print a;"))
	require.NoError(t, err)

	var buf bytes.Buffer
	it := interp.New()
	it.Stdout = &buf
	require.Error(t, it.Interpret(context.Background(), prog1))
	require.NoError(t, it.Interpret(context.Background(), prog2))
	assert.Equal(t, "1\n", buf.String())
}

func TestPersistentInterpreter(t *testing.T) {
	// top-level bindings survive across Interpret calls, as in the REPL
	var buf bytes.Buffer
	it := interp.New()
	it.Stdout = &buf

	for i, src := range []string{"var a = 1;", "fun f() { return a + 1; }", "print f();"} {
		prog, err := parser.ParseChunk(context.Background(), "repl", []byte(src))
		require.NoError(t, err, "chunk %d", i)
		require.NoError(t, it.Interpret(context.Background(), prog), "chunk %d", i)
	}
	assert.Equal(t, "2\n", buf.String())
}

func TestLeftToRightEvaluation(t *testing.T) {
	out := runOK(t, `
fun probe(n) { print n; return n; }
probe(1) + probe(2) * probe(3);
var a = 0;
a = probe(4);
`)
	assert.Equal(t, []string{"1", "2", "3", "4"}, lines(out))
}

func TestMaxCallDepth(t *testing.T) {
	prog, err := parser.ParseChunk(context.Background(), "test.lox", []byte("fun f() { return f(); } f();"))
	require.NoError(t, err)

	it := interp.New()
	it.Stdout = new(bytes.Buffer)
	it.MaxCallDepth = 64
	err = it.Interpret(context.Background(), prog)
	require.Error(t, err)
	assert.EqualError(t, err, "[line 1] Runtime Error: Stack overflow.")
}

func TestDefine(t *testing.T) {
	prog, err := parser.ParseChunk(context.Background(), "test.lox", []byte("print answer;"))
	require.NoError(t, err)

	var buf bytes.Buffer
	it := interp.New()
	it.Stdout = &buf
	it.Define("answer", interp.Number(42))
	require.NoError(t, it.Interpret(context.Background(), prog))
	assert.Equal(t, "42\n", buf.String())
}
