package amidar

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
)

//go:embed levels/default_board.txt
var defaultBoardText string

//go:embed levels/enemy_routes.txt
var defaultRoutesText string

// Level file names inside a level directory.
const (
	BoardFile  = "default_board.txt"
	RoutesFile = "enemy_routes.txt"
)

// maxCachedBoards bounds the parsed-board cache. Boards beyond it are parsed
// on every use.
const maxCachedBoards = 8

// LevelRegistry owns the default level data and a cache of parsed boards.
// It is built once by the simulation factory and shared by every game it
// creates; games only ever receive clones of the cached boards.
type LevelRegistry struct {
	mu           sync.Mutex
	defaultLines []string
	routes       [][]uint32
	cache        map[string]*Board
}

// NewLevelRegistry parses the embedded default level.
func NewLevelRegistry() (*LevelRegistry, error) {
	return NewLevelRegistryFrom(defaultBoardText, defaultRoutesText)
}

// LoadLevelRegistry reads a level directory containing BoardFile and RoutesFile.
func LoadLevelRegistry(dir string) (*LevelRegistry, error) {
	boardPath := filepath.Join(dir, BoardFile)
	boardText, err := os.ReadFile(boardPath)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", boardPath, err)
	}
	routesPath := filepath.Join(dir, RoutesFile)
	routesText, err := os.ReadFile(routesPath)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", routesPath, err)
	}
	return NewLevelRegistryFrom(string(boardText), string(routesText))
}

// NewLevelRegistryFrom parses level text. Any error here is a content bug.
func NewLevelRegistryFrom(boardText, routesText string) (*LevelRegistry, error) {
	lines := SplitLines(boardText)
	board, err := ParseBoard(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing default board: %w", err)
	}
	routes, err := ParseRoutes(routesText, board)
	if err != nil {
		return nil, fmt.Errorf("parsing enemy routes: %w", err)
	}
	return &LevelRegistry{
		defaultLines: lines,
		routes:       routes,
		cache:        map[string]*Board{cacheKey(lines): board},
	}, nil
}

// SplitLines splits level text into rows, dropping a trailing empty line and
// carriage returns.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// ParseRoutes reads one route per non-blank line as whitespace-separated
// tile ids. Every id must be on the board and consecutive ids, including the
// wrap from last to first, must be 4-adjacent tiles.
func ParseRoutes(text string, board *Board) ([][]uint32, error) {
	var routes [][]uint32
	for n, line := range SplitLines(text) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		route := make([]uint32, 0, len(fields))
		for _, f := range fields {
			id, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("route %d: bad tile id %q: %w", n+1, f, err)
			}
			if id >= uint64(board.Width)*uint64(board.Height) {
				return nil, fmt.Errorf("route %d: tile id %d is off the board", n+1, id)
			}
			route = append(route, uint32(id))
		}
		for i, id := range route {
			a := board.LookupPosition(id)
			b := board.LookupPosition(route[(i+1)%len(route)])
			if len(route) > 1 && a.ManhattanDist(b) != 1 {
				return nil, fmt.Errorf("route %d: tiles %v and %v are not adjacent", n+1, a, b)
			}
		}
		routes = append(routes, route)
	}
	return routes, nil
}

func cacheKey(lines []string) string {
	return strings.Join(lines, "\n")
}

// DefaultLines returns a copy of the default board text.
func (r *LevelRegistry) DefaultLines() []string {
	return slices.Clone(r.defaultLines)
}

// DefaultBoard returns a fresh, unpainted copy of the default board.
func (r *LevelRegistry) DefaultBoard() *Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache[cacheKey(r.defaultLines)].Clone()
}

// Board returns a fresh copy of the board described by lines, parsing and
// caching it on first use.
func (r *LevelRegistry) Board(lines []string) (*Board, error) {
	key := cacheKey(lines)
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.cache[key]; ok {
		return b.Clone(), nil
	}
	b, err := ParseBoard(lines)
	if err != nil {
		return nil, err
	}
	if len(r.cache) >= maxCachedBoards {
		return b, nil
	}
	r.cache[key] = b
	return b.Clone(), nil
}

// Routes returns the scripted enemy routes.
func (r *LevelRegistry) Routes() [][]uint32 {
	return r.routes
}

// NumRoutes returns the number of scripted routes.
func (r *LevelRegistry) NumRoutes() int {
	return len(r.routes)
}
