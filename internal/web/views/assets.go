package views

const pageCSS = `
:root{--bg-primary:#0d1117;--bg-secondary:#161b22;--bg-tertiary:#21262d;--border:#30363d;
--text-primary:#e6edf3;--text-secondary:#8b949e;--text-muted:#6e7681;--accent-blue:#58a6ff;
--accent-green:#3fb950;--accent-red:#f85149;--accent-orange:#d29922;--accent-purple:#a371f7}
*{box-sizing:border-box}
body{margin:0;background:var(--bg-primary);color:var(--text-primary);font:14px/1.5 system-ui,sans-serif}
.app{display:flex;flex-direction:column;height:100vh}
.bar{display:flex;justify-content:space-between;align-items:center;padding:12px 24px;background:var(--bg-secondary);border-bottom:1px solid var(--border)}
.bar.small{font-size:12px;color:var(--text-muted);border-top:1px solid var(--border);border-bottom:0;padding:8px 24px}
.brand{display:flex;align-items:center;gap:12px}.brand h1{font-size:18px;margin:0}
.logo{width:32px;height:32px;border-radius:6px;display:flex;align-items:center;justify-content:center;background:var(--accent-purple)}
.controls{display:flex;align-items:center;gap:16px}.count{color:var(--text-secondary)}
form{margin:0;display:inline}
button{font:inherit;cursor:pointer;border:0;background:transparent;color:var(--text-secondary)}
.toggle{display:flex;border:1px solid var(--border);border-radius:4px;overflow:hidden}
.toggle button{padding:4px 12px}.toggle button.active{background:var(--accent-blue);color:#fff}
.reset{padding:4px 12px;border-radius:4px;background:var(--bg-tertiary)}
.alert{margin:12px 24px;padding:12px 16px;border:1px solid var(--accent-red);border-radius:6px;background:rgba(248,81,73,.1)}
.alert .action,.alert .code{margin-left:8px}
.alert .code{color:var(--text-muted)}
.upload{flex:1;display:flex;align-items:center;justify-content:center;padding:32px}
.zone{display:block;width:100%;max-width:672px;padding:48px;text-align:center;cursor:pointer;border:2px dashed var(--border);border-radius:8px;background:var(--bg-secondary)}
.zone.dragging{border-color:var(--accent-blue);background:rgba(88,166,255,.05)}
.zone .icon{font-size:30px}.zone p{color:var(--text-secondary)}
.example{padding:16px;border-radius:6px;background:var(--bg-tertiary);color:var(--text-muted);font-size:13px}
.example code{display:block;color:var(--accent-orange)}
.compare{flex:1;display:flex;overflow:hidden}
.panels{flex:1;display:flex;overflow:hidden}
.panel{flex:1;display:flex;flex-direction:column;overflow:hidden}.panel.before{border-right:1px solid var(--border)}
.panel-head{display:flex;align-items:center;gap:8px;padding:12px 16px;background:var(--bg-secondary);border-bottom:1px solid var(--border);font-weight:500}
.dot{width:12px;height:12px;border-radius:50%}
.before .dot{background:var(--accent-red)}.before .title{color:var(--accent-red)}
.after .dot{background:var(--accent-green)}.after .title{color:var(--accent-green)}
.panel-body{flex:1;overflow:auto;padding:24px}
pre.raw{margin:0;white-space:pre-wrap;font-size:13px}
.markdown-content pre{background:var(--bg-tertiary);padding:12px;border-radius:6px;overflow:auto}
.sidebar{width:256px;flex-shrink:0;overflow-y:auto;background:var(--bg-secondary);border-left:1px solid var(--border)}
.sidebar-head{position:sticky;top:0;padding:12px 16px;font-size:12px;font-weight:600;text-transform:uppercase;letter-spacing:.05em;color:var(--text-muted);background:var(--bg-secondary)}
.records{list-style:none;margin:0;padding:0 0 16px}
.records li{border-right:3px solid transparent}
.records li.selected{background:rgba(88,166,255,.1);border-right-color:var(--accent-blue)}
.records button{display:grid;grid-template-columns:24px 1fr;gap:4px 8px;width:100%;padding:12px 16px;text-align:left}
.num{width:24px;height:24px;border-radius:4px;font-size:12px;display:flex;align-items:center;justify-content:center;background:var(--bg-tertiary)}
.label{overflow:hidden;text-overflow:ellipsis;white-space:nowrap}.selected .label{color:var(--text-primary)}
.preview{grid-column:2;font-size:12px;color:var(--text-muted);overflow:hidden;text-overflow:ellipsis;white-space:nowrap}
`

// dropScript submits the upload form on file pick or drop. Drops of files
// that are not .csv, .xlsx or text/csv are ignored.
const dropScript = `
(function(){
  var form=document.getElementById("upload-form");
  if(!form){return;}
  var zone=document.getElementById("drop-zone"),input=document.getElementById("file-input");
  input.addEventListener("change",function(){if(input.files.length){form.submit();}});
  zone.addEventListener("dragover",function(e){e.preventDefault();zone.classList.add("dragging");});
  zone.addEventListener("dragleave",function(){zone.classList.remove("dragging");});
  zone.addEventListener("drop",function(e){
    e.preventDefault();zone.classList.remove("dragging");
    var f=e.dataTransfer.files[0];
    if(!f){return;}
    var n=f.name.toLowerCase();
    if(!(n.endsWith(".csv")||n.endsWith(".xlsx")||f.type==="text/csv")){return;}
    input.files=e.dataTransfer.files;form.submit();
  });
})();
`
