package server

// dashboardPageHTML is the single dashboard page. It talks to the server over
// the websocket session channel: control changes send actions, the server
// replies with a rendered view, and Plotly draws the chart payload.
const dashboardPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; background: #0f1115; color: #e6e6e6; }
  header { padding: 16px 24px; border-bottom: 1px solid #2a2d34; }
  .controls { display: flex; gap: 16px; align-items: center; padding: 12px 24px; }
  .controls label { font-size: 13px; color: #9aa0a8; }
  .kpis { display: flex; gap: 16px; padding: 0 24px; }
  .kpi { flex: 1; background: #181b21; border: 1px solid #2a2d34; border-radius: 8px; padding: 14px; }
  .kpi .label { font-size: 12px; color: #9aa0a8; }
  .kpi .value { font-size: 26px; margin-top: 4px; }
  .kpi .caption { font-size: 11px; color: #6d737c; margin-top: 4px; }
  section { padding: 12px 24px; }
  h2 { font-size: 15px; color: #c6cbd2; }
  table { border-collapse: collapse; width: 100%; font-size: 13px; }
  th, td { border: 1px solid #2a2d34; padding: 6px 10px; text-align: left; }
  th { background: #181b21; color: #9aa0a8; }
  .placeholder { color: #6d737c; font-style: italic; padding: 8px 0; }
  #chart { height: 420px; }
  button { background: #2d5cde; color: #fff; border: 0; border-radius: 6px; padding: 8px 14px; cursor: pointer; }
</style>
</head>
<body>
<header><h1>{{.Title}}</h1></header>

<div class="controls">
  <label>Symbol <select id="symbol"></select></label>
  <label>Lookback (hours)
    <input type="range" id="hours" min="{{.MinHours}}" max="{{.MaxHours}}" value="{{.DefaultHours}}">
    <span id="hoursValue">{{.DefaultHours}}</span>
  </label>
  <button id="refresh">Refresh now</button>
</div>

<div class="kpis">
  <div class="kpi"><div class="label">Latest Price</div><div class="value" id="kpiPrice">-</div><div class="caption" id="kpiPriceCaption"></div></div>
  <div class="kpi"><div class="label">24h Change %</div><div class="value" id="kpiChange">-</div></div>
  <div class="kpi"><div class="label">Cross Signal</div><div class="value" id="kpiSignal">-</div></div>
</div>

<section><h2>Price Trends</h2><div id="chart"></div><div id="chartPlaceholder" class="placeholder" hidden></div></section>
<section><h2>Signal Summary</h2><div id="signalTable"></div></section>
<section><h2>24h Summary</h2><div id="summaryTable"></div></section>

<script>
(function () {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  var symbolSel = document.getElementById("symbol");
  var hoursInput = document.getElementById("hours");

  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type !== "view") {
      if (msg.type === "empty") { document.body.insertAdjacentHTML("beforeend", '<section class="placeholder">' + msg.message + "</section>"); }
      return;
    }
    renderView(msg.view);
  };

  symbolSel.onchange = function () { ws.send(JSON.stringify({action: "select_symbol", symbol: symbolSel.value})); };
  hoursInput.onchange = function () { ws.send(JSON.stringify({action: "set_hours", hours_back: parseInt(hoursInput.value, 10)})); };
  hoursInput.oninput = function () { document.getElementById("hoursValue").textContent = hoursInput.value; };
  document.getElementById("refresh").onclick = function () { ws.send(JSON.stringify({action: "refresh"})); };

  function loadSymbols(selected) {
    fetch("/api/symbols").then(function (r) { return r.json(); }).then(function (data) {
      symbolSel.innerHTML = "";
      (data.symbols || []).forEach(function (sym) {
        var opt = document.createElement("option");
        opt.value = sym; opt.textContent = sym; opt.selected = sym === selected;
        symbolSel.appendChild(opt);
      });
    });
  }

  function renderView(view) {
    loadSymbols(view.symbol);
    hoursInput.value = view.hours_back;
    document.getElementById("hoursValue").textContent = view.hours_back;

    setKPI("kpiPrice", view.kpi_price); setKPI("kpiChange", view.kpi_change); setKPI("kpiSignal", view.kpi_signal);
    document.getElementById("kpiPriceCaption").textContent = view.kpi_price.caption || "";

    var chartDiv = document.getElementById("chart");
    var ph = document.getElementById("chartPlaceholder");
    if (view.chart) {
      ph.hidden = true; chartDiv.hidden = false;
      var traces = view.chart.series.map(function (s) {
        return {x: view.chart.timestamps, y: s.values, name: s.name, mode: "lines"};
      });
      Plotly.react(chartDiv, traces, {height: 420, paper_bgcolor: "#0f1115", plot_bgcolor: "#0f1115", font: {color: "#e6e6e6"}});
    } else {
      chartDiv.hidden = true; ph.hidden = false;
      ph.textContent = view.chart_placeholder;
    }

    renderTable("signalTable", view.signal_table);
    renderTable("summaryTable", view.summary_table);
  }

  function setKPI(id, cell) { document.getElementById(id).textContent = cell.value; }

  function renderTable(id, table) {
    var el = document.getElementById(id);
    if (table.placeholder) { el.innerHTML = '<div class="placeholder">' + table.placeholder + "</div>"; return; }
    var html = "<table><tr>";
    table.columns.forEach(function (c) { html += "<th>" + c + "</th>"; });
    html += "</tr>";
    table.rows.forEach(function (row) {
      html += "<tr>";
      row.forEach(function (cell) { html += "<td>" + cell + "</td>"; });
      html += "</tr>";
    });
    el.innerHTML = html + "</table>";
  }
})();
</script>
</body>
</html>`
