package notify

const emailHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Bulletin.Title}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 640px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: #ff6200;
      color: #ffffff;
    }

    .header h2 {
      margin: 0;
      font-size: 20px;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
      font-size: 14px;
    }

    .section-title {
      font-size: 11px;
      font-weight: 700;
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.1em;
      margin-bottom: 12px;
    }

    .summary-list {
      margin: 0;
      padding-left: 20px;
    }

    .summary-list li {
      margin-bottom: 8px;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
      background: #f9fafb;
      border-top: 1px solid #f3f4f6;
    }

    a {
      color: #0b3d91;
      text-decoration: none;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h2>Yeni ING Ekonomi Bülteni</h2>
    </div>

    <div class="section">
      <p><strong>{{.Bulletin.Title}}</strong> yayınlandı ve Dropbox'a yüklendi.</p>
      <p>PDF URL: <a href="{{.Bulletin.URL}}" target="_blank" rel="noopener">{{.Bulletin.URL}}</a></p>
      <p>İndirilen dosya: {{.FileName}}</p>
      {{if .RemotePath}}<p>Dropbox: {{.RemotePath}}</p>{{end}}
    </div>

    {{if .Summary}}
    <div class="section">
      <div class="section-title">Özet</div>
      <ul class="summary-list">
        {{range .Summary}}
        <li>{{.}}</li>
        {{end}}
      </ul>
    </div>
    {{end}}

    <div class="footer">
      Generated by <a href="https://github.com/shanehull/bultentakip" target="_blank" rel="noopener">bultentakip</a>
    </div>
  </div>
</body>
</html>`
