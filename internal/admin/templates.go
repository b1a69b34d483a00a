package admin

import "html/template"

var loginTmpl = template.Must(template.New("login").Parse(loginHTML))

const loginHTML = `<!DOCTYPE html>
<html>
<head>
  <title>GrillShine Admin</title>
  <style>
    body { font-family: sans-serif; background: #f9fafb; display: flex; justify-content: center; padding-top: 10vh; }
    form { background: #fff; padding: 2rem; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,.1); width: 280px; }
    input { display: block; width: 100%; margin: .5rem 0 1rem; padding: .5rem; box-sizing: border-box; }
    button { width: 100%; padding: .6rem; background: #111827; color: #fff; border: 0; border-radius: 4px; cursor: pointer; }
    .error { color: #dc2626; font-size: .9rem; }
  </style>
</head>
<body>
  <form method="post" action="/admin/login">
    <h2>Admin Login</h2>
    {{if .Error}}<p class="error">Invalid username or password.</p>{{end}}
    <label>Username</label>
    <input type="text" name="username" autofocus>
    <label>Password</label>
    <input type="password" name="password">
    <button type="submit">Sign in</button>
  </form>
</body>
</html>`

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Quote Requests | GrillShine Admin</title>
  <style>
    body { font-family: sans-serif; background: #f9fafb; margin: 0; padding: 1.5rem; }
    .bar { display: flex; justify-content: space-between; align-items: center; margin-bottom: 1rem; }
    .bar a { margin-left: 1rem; }
    table { width: 100%; border-collapse: collapse; background: #fff; }
    th, td { padding: .5rem .75rem; border-bottom: 1px solid #e5e7eb; text-align: left; vertical-align: top; font-size: .9rem; }
    th { background: #f3f4f6; }
    img { border-radius: 4px; margin-right: 4px; }
    .del { color: #dc2626; }
  </style>
</head>
<body>
  <div class="bar">
    <h2>Quote Requests ({{.Count}})</h2>
    <div>
      <a href="/admin/export">Export CSV</a>
      <a href="/admin/logout">Log out</a>
    </div>
  </div>
  <table>
    <tr>
      <th>ID</th><th>Received</th><th>Name</th><th>Email</th><th>Phone</th>
      <th>Details</th><th>Photos</th><th></th>
    </tr>
    {{range .Submissions}}
    <tr>
      <td>{{.ID}}</td>
      <td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
      <td>{{.Name}}</td>
      <td><a href="mailto:{{.Email}}">{{.Email}}</a></td>
      <td>{{.Phone}}</td>
      <td>{{.Details}}</td>
      <td>
        {{range .Attachments}}<a href="{{.URL}}" target="_blank"><img src="{{.URL}}" alt="{{.Filename}}" width="72"></a>{{end}}
      </td>
      <td><a class="del" href="/admin/delete/{{.ID}}" onclick="return confirm('Delete submission {{.ID}}?')">delete</a></td>
    </tr>
    {{else}}
    <tr><td colspan="8">No submissions yet.</td></tr>
    {{end}}
  </table>
</body>
</html>`
