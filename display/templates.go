package display

// fragmentTemplate renders the result area of the popup.
const fragmentTemplate = `{{define "fragment"}}<div id="result" class="result{{if .IsError}} error{{end}}{{if .Loading}} loading{{end}}"{{with .Lang}} lang="{{.}}"{{end}}>{{if .Markup}}{{.HTML}}{{else}}{{.Content}}{{end}}</div>{{end}}`

// pageTemplate is the popup page served by the local host.
const pageTemplate = `<!DOCTYPE html>
<html lang="zh-TW">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: sans-serif; min-width: 320px; margin: 12px; }
    .result { font-size: 16px; line-height: 2; white-space: pre-wrap; }
    .result.error { color: #c0392b; }
    .result.loading { color: #888; }
    rt { font-size: 0.6em; color: #555; }
    #translate-popup { position: fixed; bottom: 20px; right: 20px; background: rgba(0,0,0,0.8);
      color: #fff; padding: 10px 14px; border-radius: 8px; font-size: 14px; z-index: 999999;
      max-width: 300px; line-height: 1.4; box-shadow: 0 2px 6px rgba(0,0,0,0.3); cursor: pointer; }
  </style>
</head>
<body>
  <label><input type="checkbox" id="learningMode"{{if .View.LearningMode}} checked{{end}}> {{.ToggleLabel}}</label>
  <div id="view">{{template "fragment" .Fragment}}</div>
  <script>
    const overlayMillis = {{.OverlayMillis}};
    const view = document.getElementById("view");
    const toggle = document.getElementById("learningMode");

    function refresh() {
      fetch("/popup/view").then(r => r.text()).then(html => { view.innerHTML = html; });
    }

    function showOverlay(text) {
      const existing = document.getElementById("translate-popup");
      if (existing) existing.remove();
      const popup = document.createElement("div");
      popup.id = "translate-popup";
      popup.textContent = text;
      popup.addEventListener("click", () => popup.remove());
      document.body.appendChild(popup);
      setTimeout(() => popup.remove(), overlayMillis);
    }

    toggle.addEventListener("change", () => {
      const body = new URLSearchParams({ enabled: toggle.checked });
      fetch("/popup/learning-mode", { method: "POST", body: body })
        .then(r => r.text()).then(html => { view.innerHTML = html; });
    });

    const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
    ws.onmessage = (event) => {
      const msg = JSON.parse(event.data);
      if (msg.type === "translationResult" || msg.type === "openPopup") refresh();
      if (msg.type === "showTranslation") showOverlay(msg.text);
    };
    refresh();
  </script>
</body>
</html>
`
