package rest

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type templates struct {
	page *template.Template
}

type cellView struct {
	Row     int
	Col     int
	Symbol  entity.Symbol
	Winning bool
	Open    bool
}

type pageData struct {
	ChooseSide bool
	ChooseMode bool
	Mode       entity.Mode
	Player1    entity.Symbol
	Player2    entity.Symbol
	Turn       entity.Symbol
	Rows       [entity.Size][entity.Size]cellView
	Over       bool
	Message    string

	OpponentPending bool
	OpponentDelayMS int64
	ResultDelayMS   int64
}

func newPageData(game *entity.Game, ui config.UI) pageData {
	data := pageData{
		ChooseSide: !game.Players.Chosen(),
		ChooseMode: game.Mode == entity.ModeUnset && !game.Started(),
		Mode:       game.Mode,
		Player1:    game.Players.Player1,
		Player2:    game.Players.Player2,
		Turn:       game.Turn,
		Over:       game.IsOver(),

		OpponentPending: game.OpponentToMove(),
		OpponentDelayMS: ui.OpponentDelay.Milliseconds(),
		ResultDelayMS:   ui.ResultDelay.Milliseconds(),
	}

	winning := make(map[entity.Cell]bool, len(game.Result.Line))
	for _, cell := range game.Result.Line {
		winning[cell] = true
	}

	playable := game.Players.Chosen() && !data.Over && !data.OpponentPending
	for row := range entity.Size {
		for col := range entity.Size {
			cell := entity.Cell{Row: row, Col: col}
			symbol := game.Board.At(cell)
			data.Rows[row][col] = cellView{
				Row:     row,
				Col:     col,
				Symbol:  symbol,
				Winning: winning[cell],
				Open:    playable && symbol == entity.Empty,
			}
		}
	}

	switch game.Result.Status {
	case entity.StatusWon:
		data.Message = fmt.Sprintf("%s wins!", game.Result.Winner)
	case entity.StatusDraw:
		data.Message = "It's a draw!"
	case entity.StatusInProgress:
	}

	return data
}

func loadTemplates() *templates {
	return &templates{
		page: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

func (that *templates) renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := that.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute page template: %w", err)
	}

	return buf.Bytes(), nil
}

const pageTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Tic Tac Toe</title>
<style>
body { font-family: sans-serif; text-align: center; }
.board { display: inline-grid; grid-template-columns: repeat(3, 80px); gap: 4px; }
.cell { width: 80px; height: 80px; font-size: 40px; }
.cell.win { background: #9fd89f; }
.result { opacity: 0; animation: reveal 0s {{.ResultDelayMS}}ms forwards; }
@keyframes reveal { to { opacity: 1; } }
</style>
</head>
<body>
<h1>Tic Tac Toe</h1>
{{if .ChooseMode}}
<form method="post" action="/mode" id="mode">
  <button name="mode" value="human">Two players</button>
  <button name="mode" value="computer">Play the computer</button>
</form>
{{end}}
{{if .ChooseSide}}
<div class="player-select">
  <h2>Choose Your Side</h2>
  <form method="post" action="/side" id="side">
    <button name="symbol" value="x">Choose X</button>
    <button name="symbol" value="o">Choose O</button>
  </form>
</div>
{{else}}
<p class="players">Player 1: {{.Player1}} &middot; Player 2: {{.Player2}}{{if eq .Mode "computer"}} (computer){{end}}</p>
<div class="board" id="board">
  {{range .Rows}}{{range .}}
  <form method="post" action="/play">
    <input type="hidden" name="row" value="{{.Row}}">
    <input type="hidden" name="col" value="{{.Col}}">
    <button class="cell {{.Symbol}}{{if .Winning}} win{{end}}"{{if not .Open}} disabled{{end}}>{{.Symbol}}</button>
  </form>
  {{end}}{{end}}
</div>
{{if .Over}}
<div class="result" id="result">
  <h2>{{.Message}}</h2>
</div>
{{else}}
<p class="turn">Turn: {{.Turn}}</p>
{{end}}
{{if .OpponentPending}}
<form method="post" action="/opponent" id="opponent"></form>
<script>setTimeout(function () { document.getElementById("opponent").submit(); }, {{.OpponentDelayMS}});</script>
{{end}}
{{end}}
<form method="post" action="/reset"><button>New game</button></form>
</body>
</html>
`
