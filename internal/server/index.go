package server

// The explorer page is self-contained: plain controls, a canvas, and a
// small orthographic projector. The server stays a pure data source.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>collatz shrub explorer</title>
<style>
body { margin: 0; display: flex; font: 13px sans-serif; background: #0d0d0d; color: #ddd; }
#panel { flex: 0 0 220px; padding: 16px; display: flex; flex-direction: column; gap: 8px; }
#panel label { display: flex; justify-content: space-between; align-items: center; gap: 8px; }
#panel input, #panel select { width: 100px; background: #1c1c1c; color: #ddd; border: 1px solid #333; padding: 3px; }
#run { margin-top: 10px; padding: 6px; background: #224; color: #ddd; border: 1px solid #446; cursor: pointer; }
#status { color: #888; min-height: 2em; }
canvas { flex: 1 1 auto; height: 100vh; }
</style>
</head>
<body>
<div id="panel">
  <h3>collatz shrub</h3>
  <label>trajectories <input id="n_starts" type="number" value="300"></label>
  <label>max start <input id="max_start" type="number" value="100000"></label>
  <label>rule <select id="rule"><option>binary</option><option>ternary</option></select></label>
  <label>left turn &deg; <input id="left_deg" type="number" step="0.05" value="8.65"></label>
  <label>right turn &deg; <input id="right_deg" type="number" step="0.05" value="16.0"></label>
  <label>vertical step <input id="vertical_step" type="number" step="0.05" value="0.15"></label>
  <label>policy <select id="vertical_policy"><option>fixed</option><option>proportional</option></select></label>
  <label>seed <input id="seed" type="number" value="42"></label>
  <button id="run">run / refresh</button>
  <div id="status"></div>
  <div style="color:#666">drag to rotate, wheel to zoom</div>
</div>
<canvas id="plot"></canvas>
<script>
"use strict";
const canvas = document.getElementById("plot");
const ctx = canvas.getContext("2d");
const status = document.getElementById("status");
let lines = [], rotX = -1.1, rotZ = -0.6, zoom = 1;

function fetchShrub() {
  const ids = ["n_starts","max_start","rule","left_deg","right_deg","vertical_step","vertical_policy","seed"];
  const qs = ids.map(id => id + "=" + encodeURIComponent(document.getElementById(id).value)).join("&");
  status.textContent = "growing...";
  fetch("/api/shrub?" + qs)
    .then(r => r.json().then(body => ({ok: r.ok, body})))
    .then(({ok, body}) => {
      if (!ok) { status.textContent = body.error; return; }
      lines = normalize(body.lines);
      status.textContent = body.lines.length + " trajectories (" + body.rule + ")";
      draw();
    })
    .catch(err => { status.textContent = String(err); });
}

function normalize(raw) {
  let lo = [Infinity, Infinity, Infinity], hi = [-Infinity, -Infinity, -Infinity];
  for (const l of raw) for (const p of l.points)
    for (let i = 0; i < 3; i++) { lo[i] = Math.min(lo[i], p[i]); hi[i] = Math.max(hi[i], p[i]); }
  const span = Math.max(hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2]) || 1;
  const c = [0,1,2].map(i => (lo[i]+hi[i])/2);
  return raw.map(l => ({
    color: l.color, opacity: l.opacity, width: l.width, hero: l.hero,
    points: l.points.map(p => [0,1,2].map(i => 2*(p[i]-c[i])/span))
  }));
}

function project(p) {
  let [x, y, z] = p;
  const cx = Math.cos(rotX), sx = Math.sin(rotX);
  [y, z] = [y*cx - z*sx, y*sx + z*cx];
  const cz = Math.cos(rotZ), sz = Math.sin(rotZ);
  [x, y] = [x*cz - y*sz, x*sz + y*cz];
  const s = zoom * Math.min(canvas.width, canvas.height) / 2.6;
  return [canvas.width/2 + x*s, canvas.height/2 - y*s];
}

function draw() {
  canvas.width = canvas.clientWidth; canvas.height = canvas.clientHeight;
  ctx.fillStyle = "#0d0d0d"; ctx.fillRect(0, 0, canvas.width, canvas.height);
  const ordered = lines.filter(l => !l.hero).concat(lines.filter(l => l.hero));
  for (const l of ordered) {
    ctx.strokeStyle = l.color; ctx.globalAlpha = l.opacity; ctx.lineWidth = l.width;
    ctx.beginPath();
    l.points.forEach((p, i) => {
      const [x, y] = project(p);
      if (i === 0) ctx.moveTo(x, y); else ctx.lineTo(x, y);
    });
    ctx.stroke();
  }
  ctx.globalAlpha = 1;
}

let dragging = false, lastX = 0, lastY = 0;
canvas.addEventListener("mousedown", e => { dragging = true; lastX = e.clientX; lastY = e.clientY; });
window.addEventListener("mouseup", () => { dragging = false; });
window.addEventListener("mousemove", e => {
  if (!dragging) return;
  rotZ += (e.clientX - lastX) * 0.01;
  rotX += (e.clientY - lastY) * 0.01;
  lastX = e.clientX; lastY = e.clientY;
  draw();
});
canvas.addEventListener("wheel", e => {
  e.preventDefault();
  zoom *= e.deltaY < 0 ? 1.1 : 0.9;
  draw();
});
window.addEventListener("resize", draw);
document.getElementById("run").addEventListener("click", fetchShrub);
</script>
</body>
</html>
`
