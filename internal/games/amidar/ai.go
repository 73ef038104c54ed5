package amidar

import (
	"slices"

	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/random"
)

// MovementAI chooses the next tile for a mob. The set of implementations is
// closed: PlayerAI, EnemyLookupAI, EnemyPerimeterAI, EnemyAmidarMvmt,
// EnemyRandomMvmt and EnemyTargetPlayer. Implementations hold behavior
// memory only; position lives on the Mob.
type MovementAI interface {
	// Reset restores the behavior memory to its configured start values.
	Reset()

	kind() string
	clone() MovementAI
	startTile(env *moveEnv, playerStart TilePoint) TilePoint
	chooseNextTile(pos TilePoint, in core.Input, env *moveEnv) (TilePoint, bool)
}

// moveEnv is everything a policy may look at while choosing a tile.
type moveEnv struct {
	board  *Board
	routes [][]uint32
	// player is a snapshot of the player mob, nil while moving the player.
	player *Mob
	rng    *random.Gen
}

// PlayerAI follows controller input.
type PlayerAI struct{}

// EnemyLookupAI walks a pre-authored looping route.
type EnemyLookupAI struct {
	Next              uint32 `json:"next"`
	DefaultRouteIndex uint32 `json:"default_route_index"`
}

// EnemyPerimeterAI circles the outer edge of the board.
type EnemyPerimeterAI struct {
	Start TilePoint `json:"start"`
}

// EnemyAmidarMvmt is the arcade's patrol pattern: vertical first, bouncing off
// the top and bottom edges, sliding sideways when blocked.
type EnemyAmidarMvmt struct {
	Vert       core.Direction `json:"vert"`
	Horiz      core.Direction `json:"horiz"`
	StartVert  core.Direction `json:"start_vert"`
	StartHoriz core.Direction `json:"start_horiz"`
	Start      TilePoint      `json:"start"`
}

// EnemyRandomMvmt keeps its heading and re-rolls it at junctions.
type EnemyRandomMvmt struct {
	Start    TilePoint      `json:"start"`
	StartDir core.Direction `json:"start_dir"`
	Dir      core.Direction `json:"dir"`
}

// EnemyTargetPlayer chases the player while it is in straight-line view.
type EnemyTargetPlayer struct {
	Start          TilePoint      `json:"start"`
	StartDir       core.Direction `json:"start_dir"`
	VisionDistance int32          `json:"vision_distance"`
	Dir            core.Direction `json:"dir"`
	PlayerSeen     *TilePoint     `json:"player_seen"`
}

func (*PlayerAI) Reset() {}

func (a *EnemyLookupAI) Reset() {
	a.Next = 0
}

func (*EnemyPerimeterAI) Reset() {}

func (a *EnemyAmidarMvmt) Reset() {
	a.Vert = a.StartVert
	a.Horiz = a.StartHoriz
}

func (a *EnemyRandomMvmt) Reset() {
	a.Dir = a.StartDir
}

func (a *EnemyTargetPlayer) Reset() {
	a.Dir = a.StartDir
	a.PlayerSeen = nil
}

func (*PlayerAI) kind() string { return "Player" }
func (*EnemyLookupAI) kind() string { return "EnemyLookupAI" }
func (*EnemyPerimeterAI) kind() string { return "EnemyPerimeterAI" }
func (*EnemyAmidarMvmt) kind() string { return "EnemyAmidarMvmt" }
func (*EnemyRandomMvmt) kind() string { return "EnemyRandomMvmt" }
func (*EnemyTargetPlayer) kind() string { return "EnemyTargetPlayer" }

func (a *PlayerAI) clone() MovementAI {
	c := *a
	return &c
}

func (a *EnemyLookupAI) clone() MovementAI {
	c := *a
	return &c
}

func (a *EnemyPerimeterAI) clone() MovementAI {
	c := *a
	return &c
}

func (a *EnemyAmidarMvmt) clone() MovementAI {
	c := *a
	return &c
}

func (a *EnemyRandomMvmt) clone() MovementAI {
	c := *a
	return &c
}

func (a *EnemyTargetPlayer) clone() MovementAI {
	c := *a
	if a.PlayerSeen != nil {
		seen := *a.PlayerSeen
		c.PlayerSeen = &seen
	}
	return &c
}

func (*PlayerAI) startTile(_ *moveEnv, playerStart TilePoint) TilePoint {
	return playerStart
}

func (a *EnemyLookupAI) startTile(env *moveEnv, _ TilePoint) TilePoint {
	route := env.route(a.DefaultRouteIndex)
	if len(route) == 0 {
		return TilePoint{}
	}
	return env.board.LookupPosition(route[0])
}

func (*EnemyPerimeterAI) startTile(*moveEnv, TilePoint) TilePoint {
	return NewTilePoint(0, 0)
}

func (a *EnemyAmidarMvmt) startTile(*moveEnv, TilePoint) TilePoint { return a.Start }
func (a *EnemyRandomMvmt) startTile(*moveEnv, TilePoint) TilePoint { return a.Start }
func (a *EnemyTargetPlayer) startTile(*moveEnv, TilePoint) TilePoint { return a.Start }

func (*PlayerAI) chooseNextTile(pos TilePoint, in core.Input, env *moveEnv) (TilePoint, bool) {
	var dir core.Direction
	switch {
	case in.Left:
		dir = core.Left
	case in.Right:
		dir = core.Right
	case in.Up:
		dir = core.Up
	case in.Down:
		dir = core.Down
	default:
		return TilePoint{}, false
	}
	target := pos.Step(dir)
	if !env.board.GetTile(target).Walkable() {
		return TilePoint{}, false
	}
	return target, true
}

func (a *EnemyLookupAI) chooseNextTile(_ TilePoint, _ core.Input, env *moveEnv) (TilePoint, bool) {
	route := env.route(a.DefaultRouteIndex)
	if len(route) == 0 {
		return TilePoint{}, false
	}
	a.Next = (a.Next + 1) % uint32(len(route)) //#nosec G115 -- route length
	return env.board.LookupPosition(route[a.Next]), true
}

func (*EnemyPerimeterAI) chooseNextTile(pos TilePoint, _ core.Input, env *moveEnv) (TilePoint, bool) {
	for _, edge := range env.board.Perimeter(pos) {
		var step core.Direction
		switch edge {
		case core.Up:
			step = core.Right
		case core.Down:
			step = core.Left
		case core.Right:
			step = core.Down
		default:
			step = core.Up
		}
		if tp, ok := env.board.CanMove(pos, step); ok {
			return tp, true
		}
	}
	return TilePoint{}, false
}

func (a *EnemyAmidarMvmt) chooseNextTile(pos TilePoint, _ core.Input, env *moveEnv) (TilePoint, bool) {
	b := env.board
	vert, vertOK := b.CanMove(pos, a.Vert)
	perimeter := b.Perimeter(pos)
	horiz, horizOK := b.CanMove(pos, a.Horiz)

	if slices.Contains(perimeter, a.Vert) {
		a.Vert = a.Vert.Opposite()
	}

	switch {
	case vertOK:
		onSide := slices.Contains(perimeter, core.Left) || slices.Contains(perimeter, core.Right)
		if onSide && horizOK {
			return horiz, true
		}
		return vert, true
	case horizOK:
		return horiz, true
	default:
		a.Horiz = a.Horiz.Opposite()
		return b.CanMove(pos, a.Horiz)
	}
}

func (a *EnemyRandomMvmt) chooseNextTile(pos TilePoint, _ core.Input, env *moveEnv) (TilePoint, bool) {
	// The sample is drawn every tick even when the heading is kept.
	dir, tp, ok := env.randomStep(pos)
	if !ok {
		return TilePoint{}, false
	}
	def, defOK := env.board.CanMove(pos, a.Dir)
	if env.board.IsJunction(pos) || !defOK {
		a.Dir = dir
		return tp, true
	}
	return def, true
}

func (a *EnemyTargetPlayer) chooseNextTile(pos TilePoint, _ core.Input, env *moveEnv) (TilePoint, bool) {
	b := env.board
	if env.player != nil {
		pt := env.player.Position.ToTile()
		if b.IsLineOfSight(pos, pt) && pos.ManhattanDist(pt) <= a.VisionDistance {
			seen := pt
			a.PlayerSeen = &seen
			switch {
			case pt.TX == pos.TX && pt.TY < pos.TY:
				a.Dir = core.Up
			case pt.TX == pos.TX:
				a.Dir = core.Down
			case pt.TX < pos.TX:
				a.Dir = core.Left
			default:
				a.Dir = core.Right
			}
			return b.CanMove(pos, a.Dir)
		}
	}

	if a.PlayerSeen != nil && *a.PlayerSeen == pos {
		a.PlayerSeen = nil
	}
	if a.PlayerSeen != nil {
		return b.CanMove(pos, a.Dir)
	}

	def, defOK := b.CanMove(pos, a.Dir)
	if b.IsJunction(pos) || !defOK {
		dir, tp, ok := env.randomStep(pos)
		if !ok {
			return TilePoint{}, false
		}
		a.Dir = dir
		return tp, true
	}
	return def, true
}

func (env *moveEnv) route(i uint32) []uint32 {
	if int(i) >= len(env.routes) {
		return nil
	}
	return env.routes[i]
}

// randomStep picks uniformly among the walkable neighbours of pos,
// checked in Up, Down, Left, Right order.
func (env *moveEnv) randomStep(pos TilePoint) (core.Direction, TilePoint, bool) {
	type option struct {
		dir core.Direction
		tp  TilePoint
	}
	eligible := make([]option, 0, len(core.Directions))
	for _, d := range core.Directions {
		if tp, ok := env.board.CanMove(pos, d); ok {
			eligible = append(eligible, option{d, tp})
		}
	}
	i, ok := env.rng.Choose(len(eligible))
	if !ok {
		return core.Up, TilePoint{}, false
	}
	return eligible[i].dir, eligible[i].tp, true
}
