package usecase

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"go_rules/internal/domain/board"
	apperrors "go_rules/internal/errors"
	rulesRPC "go_rules/microservices/proto"
)

type RulesUseCase struct {
	log *zap.SugaredLogger
}

var _ rulesRPC.RulesServer = (*RulesUseCase)(nil)

func NewRulesUseCase(log *zap.SugaredLogger) *RulesUseCase {
	return &RulesUseCase{log: log}
}

func (r *RulesUseCase) Play(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	pos, err := positionFromRPC(in)
	if err != nil {
		return nil, toStatus(err)
	}
	geo := pos.Geometry()
	color, err := board.ParseColor(stringField(in, "color"))
	if err != nil {
		return nil, toStatus(err)
	}
	pt, err := geo.ParseVertex(stringField(in, "coordinates"))
	if err != nil {
		return nil, toStatus(err)
	}

	next, err := pos.Play(pt, color)
	if err != nil {
		r.log.Debugf("rejected %s %s: %v", color, geo.FormatVertex(pt), err)
		return nil, toStatus(err)
	}

	fields := map[string]any{
		"size":  geo.Size(),
		"board": stringList(geo.Rows(next.Board())),
		"score": next.Score(),
	}
	if ko, ok := next.Ko(); ok {
		fields["ko"] = geo.FormatVertex(ko)
	}
	return newStruct(fields)
}

func (r *RulesUseCase) Analyze(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	pos, err := positionFromRPC(in)
	if err != nil {
		return nil, toStatus(err)
	}
	geo := pos.Geometry()

	libs := make([]any, 0, geo.Area())
	for _, l := range pos.Liberties() {
		libs = append(libs, l)
	}
	legal := make([]any, 0, geo.Area())
	for _, ok := range pos.LegalMoves() {
		legal = append(legal, ok)
	}
	return newStruct(map[string]any{
		"size":      geo.Size(),
		"score":     pos.Score(),
		"territory": stringList(geo.Rows(pos.Territory())),
		"liberties": libs,
		"legal":     legal,
	})
}

func positionFromRPC(in *structpb.Struct) (board.Position, error) {
	size := in.GetFields()["size"].GetNumberValue()
	if size != math.Trunc(size) {
		return board.Position{}, apperrors.ErrInvalidBoardSize
	}
	geo, err := board.NewGeometry(int(size))
	if err != nil {
		return board.Position{}, err
	}

	var b board.Board
	if rows := in.GetFields()["board"].GetListValue(); rows != nil {
		lines := make([]string, 0, len(rows.GetValues()))
		for _, v := range rows.GetValues() {
			lines = append(lines, v.GetStringValue())
		}
		b, err = geo.ParseRows(lines)
	} else {
		b, err = geo.ParseBoard(stringField(in, "board"))
	}
	if err != nil {
		return board.Position{}, err
	}

	var ko *board.Point
	if vertex := stringField(in, "ko"); vertex != "" {
		pt, err := geo.ParseVertex(vertex)
		if err != nil {
			return board.Position{}, err
		}
		ko = &pt
	}
	return geo.NewPosition(b, ko)
}

func stringField(in *structpb.Struct, name string) string {
	return in.GetFields()[name].GetStringValue()
}

func stringList(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "build response: %v", err)
	}
	return s, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrIllegalMove):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, apperrors.ErrInvalidBoardSize),
		errors.Is(err, apperrors.ErrMalformedBoard),
		errors.Is(err, apperrors.ErrInvalidVertex),
		errors.Is(err, apperrors.ErrInvalidColor):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
