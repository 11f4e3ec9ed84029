package calc

type Op int

const (
	OpPlus Op = iota
	OpMinus
)

// Width is a plain integer type with no constants.
type Width int

type Expr interface {
	isExpr()
}

// Const is an integer literal.
type Const struct {
	Value int
}

type BinOp struct {
	Op    Op
	Left  Expr
	Right Expr
}

type Call struct {
	Name  string `treefmt:"callee"`
	Args  []Expr
	Block Expr `treefmt:",optional"`
	Count *int
	Width Width
	Debug string `treefmt:"-"`
	Flag  bool
	Inner *Const
	cache map[string]int
}

func (*Const) isExpr() {}
func (*BinOp) isExpr() {}
func (*Call) isExpr()  {}
