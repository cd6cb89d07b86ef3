package transform

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/objmap/ir"
)

// ExprTransformer runs expr-lang programs in each direction. The value
// being converted is bound to the variable "value": the plain Go form of
// the node when decoding, the field value when encoding. An empty program
// passes the value through.
type ExprTransformer struct {
	DecodeSrc string
	EncodeSrc string

	decode *vm.Program
	encode *vm.Program
}

type exprEnv struct {
	Value any `expr:"value"`
}

// Expr compiles the decode and encode programs.
func Expr(decodeSrc, encodeSrc string) (*ExprTransformer, error) {
	res := &ExprTransformer{DecodeSrc: decodeSrc, EncodeSrc: encodeSrc}
	var err error
	if decodeSrc != "" {
		res.decode, err = expr.Compile(decodeSrc, exprOpts()...)
		if err != nil {
			return nil, fmt.Errorf("decode program: %w", err)
		}
	}
	if encodeSrc != "" {
		res.encode, err = expr.Compile(encodeSrc, exprOpts()...)
		if err != nil {
			return nil, fmt.Errorf("encode program: %w", err)
		}
	}
	return res, nil
}

func exprOpts() []expr.Option {
	return []expr.Option{expr.Env(exprEnv{})}
}

func (e *ExprTransformer) FromValue(y *ir.Node) (any, error) {
	v := ir.ToAny(y)
	if e.decode == nil {
		return v, nil
	}
	res, err := expr.Run(e.decode, exprEnv{Value: v})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *ExprTransformer) ToValue(v any) (*ir.Node, error) {
	if e.encode != nil {
		res, err := expr.Run(e.encode, exprEnv{Value: v})
		if err != nil {
			return nil, err
		}
		v = res
	}
	return ir.FromAny(v)
}
